package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type CorpusEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Source         string          `gorm:"type:varchar(255);not null;index"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text / text-embedding-004 are 768-dim
	ChunkIndex     int             `gorm:"default:0"`        // 1-based label index from the offline indexer
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (CorpusEmbedding) TableName() string {
	return "corpus_embeddings"
}
