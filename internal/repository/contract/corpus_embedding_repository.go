package contract

import (
	"context"

	"nephro-assistant-be/internal/entity"
	"nephro-assistant-be/internal/repository/specification"
)

// ScoredCorpusChunk wraps CorpusChunk with its similarity score
type ScoredCorpusChunk struct {
	Chunk      *entity.CorpusChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type CorpusEmbeddingRepository interface {
	Create(ctx context.Context, chunk *entity.CorpusChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error
	DeleteAllUnscoped(ctx context.Context) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns the chunks nearest to the query embedding
	// by cosine distance, best first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredCorpusChunk, error)
}
