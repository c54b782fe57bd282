package contract

import (
	"context"

	"nephro-assistant-be/internal/entity"
	"nephro-assistant-be/internal/repository/specification"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	CreateBulk(ctx context.Context, patients []*entity.Patient) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Patient, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Patient, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindByNameFragment returns all patients whose name contains the fragment,
	// in id order (the order disambiguation menus preserve).
	FindByNameFragment(ctx context.Context, fragment string) ([]*entity.Patient, error)
}
