package implementation

import (
	"context"
	"errors"

	"nephro-assistant-be/internal/entity"
	"nephro-assistant-be/internal/mapper"
	"nephro-assistant-be/internal/model"
	"nephro-assistant-be/internal/repository/contract"
	"nephro-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PatientRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PatientMapper
}

func NewPatientRepository(db *gorm.DB) contract.PatientRepository {
	return &PatientRepositoryImpl{
		db:     db,
		mapper: mapper.NewPatientMapper(),
	}
}

func (r *PatientRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PatientRepositoryImpl) Create(ctx context.Context, patient *entity.Patient) error {
	m := r.mapper.ToModel(patient)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*patient = *r.mapper.ToEntity(m)
	return nil
}

func (r *PatientRepositoryImpl) CreateBulk(ctx context.Context, patients []*entity.Patient) error {
	models := make([]*model.Patient, len(patients))
	for i, p := range patients {
		models[i] = r.mapper.ToModel(p)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*patients[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PatientRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Patient, error) {
	var m model.Patient
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PatientRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Patient, error) {
	var models []*model.Patient
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Patient, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PatientRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Patient{}).Count(&count).Error
	return count, err
}

func (r *PatientRepositoryImpl) FindByNameFragment(ctx context.Context, fragment string) ([]*entity.Patient, error) {
	return r.FindAll(ctx,
		specification.NameContains{Fragment: fragment},
		specification.OrderBy{Field: "id", Desc: false},
	)
}
