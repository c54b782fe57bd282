package unitofwork

import (
	"context"

	"nephro-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PatientRepository() contract.PatientRepository
	CorpusEmbeddingRepository() contract.CorpusEmbeddingRepository
}
