package mapper

import (
	"github.com/pgvector/pgvector-go"

	"nephro-assistant-be/internal/entity"
	"nephro-assistant-be/internal/model"
)

type CorpusEmbeddingMapper struct{}

func NewCorpusEmbeddingMapper() *CorpusEmbeddingMapper {
	return &CorpusEmbeddingMapper{}
}

func (m *CorpusEmbeddingMapper) ToEntity(c *model.CorpusEmbedding) *entity.CorpusChunk {
	if c == nil {
		return nil
	}
	return &entity.CorpusChunk{
		Id:             c.Id,
		Source:         c.Source,
		Document:       c.Document,
		EmbeddingValue: c.EmbeddingValue.Slice(),
		ChunkIndex:     c.ChunkIndex,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *CorpusEmbeddingMapper) ToModel(c *entity.CorpusChunk) *model.CorpusEmbedding {
	if c == nil {
		return nil
	}
	return &model.CorpusEmbedding{
		Id:             c.Id,
		Source:         c.Source,
		Document:       c.Document,
		EmbeddingValue: pgvector.NewVector(c.EmbeddingValue),
		ChunkIndex:     c.ChunkIndex,
		CreatedAt:      c.CreatedAt,
	}
}
