package service

import (
	"context"

	"nephro-assistant-be/internal/mapper"
	"nephro-assistant-be/internal/repository/unitofwork"
	"nephro-assistant-be/pkg/agent/receptionist"
	"nephro-assistant-be/pkg/store"
)

// patientDirectory adapts the patient repository to the receptionist's lookup
// surface.
type patientDirectory struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.PatientMapper
}

func NewPatientDirectory(uowFactory unitofwork.RepositoryFactory) receptionist.PatientDirectory {
	return &patientDirectory{
		uowFactory: uowFactory,
		mapper:     mapper.NewPatientMapper(),
	}
}

func (d *patientDirectory) FindByName(ctx context.Context, fragment string) ([]store.Patient, error) {
	uow := d.uowFactory.NewUnitOfWork(ctx)
	patients, err := uow.PatientRepository().FindByNameFragment(ctx, fragment)
	if err != nil {
		return nil, err
	}

	out := make([]store.Patient, 0, len(patients))
	for _, p := range patients {
		out = append(out, d.mapper.ToStore(p))
	}
	return out, nil
}
