package mapper

import (
	"nephro-assistant-be/internal/entity"
	"nephro-assistant-be/internal/model"
	"nephro-assistant-be/pkg/store"
)

type PatientMapper struct{}

func NewPatientMapper() *PatientMapper {
	return &PatientMapper{}
}

func (m *PatientMapper) ToEntity(p *model.Patient) *entity.Patient {
	if p == nil {
		return nil
	}
	return &entity.Patient{
		Id:                    p.Id,
		Name:                  p.Name,
		Age:                   p.Age,
		DischargeDate:         p.DischargeDate,
		PrimaryDiagnosis:      p.PrimaryDiagnosis,
		Medications:           p.Medications,
		DietaryRestrictions:   p.DietaryRestrictions,
		FollowUp:              p.FollowUp,
		WarningSigns:          p.WarningSigns,
		DischargeInstructions: p.DischargeInstructions,
		CreatedAt:             p.CreatedAt,
	}
}

// ToStore converts the entity to the read-only view the agents work with.
func (m *PatientMapper) ToStore(p *entity.Patient) store.Patient {
	return store.Patient{
		Id:                    p.Id,
		Name:                  p.Name,
		Age:                   p.Age,
		DischargeDate:         p.DischargeDate,
		PrimaryDiagnosis:      p.PrimaryDiagnosis,
		Medications:           p.Medications,
		DietaryRestrictions:   p.DietaryRestrictions,
		FollowUp:              p.FollowUp,
		WarningSigns:          p.WarningSigns,
		DischargeInstructions: p.DischargeInstructions,
	}
}

func (m *PatientMapper) ToModel(p *entity.Patient) *model.Patient {
	if p == nil {
		return nil
	}
	return &model.Patient{
		Id:                    p.Id,
		Name:                  p.Name,
		Age:                   p.Age,
		DischargeDate:         p.DischargeDate,
		PrimaryDiagnosis:      p.PrimaryDiagnosis,
		Medications:           p.Medications,
		DietaryRestrictions:   p.DietaryRestrictions,
		FollowUp:              p.FollowUp,
		WarningSigns:          p.WarningSigns,
		DischargeInstructions: p.DischargeInstructions,
		CreatedAt:             p.CreatedAt,
	}
}
