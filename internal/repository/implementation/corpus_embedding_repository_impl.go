package implementation

import (
	"context"

	"nephro-assistant-be/internal/entity"
	"nephro-assistant-be/internal/mapper"
	"nephro-assistant-be/internal/model"
	"nephro-assistant-be/internal/repository/contract"
	"nephro-assistant-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CorpusEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CorpusEmbeddingMapper
}

func NewCorpusEmbeddingRepository(db *gorm.DB) contract.CorpusEmbeddingRepository {
	return &CorpusEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewCorpusEmbeddingMapper(),
	}
}

func (r *CorpusEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CorpusEmbeddingRepositoryImpl) Create(ctx context.Context, chunk *entity.CorpusChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *CorpusEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.CorpusEmbedding, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CorpusEmbeddingRepositoryImpl) DeleteAllUnscoped(ctx context.Context) error {
	return r.db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(&model.CorpusEmbedding{}).Error
}

func (r *CorpusEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusChunk, error) {
	var models []*model.CorpusEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CorpusChunk, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CorpusEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CorpusEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns chunks with similarity scores, best first.
// Cosine distance in pgvector is 1 - cosine_similarity, so similarity is
// computed as 1 - (embedding_value <=> query_vector).
func (r *CorpusEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredCorpusChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.CorpusEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("corpus_embeddings").
		Select("corpus_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCorpusChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCorpusChunk{
			Chunk:      r.mapper.ToEntity(&res.CorpusEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
