package entity

import (
	"time"

	"github.com/google/uuid"
)

// CorpusChunk is one indexed excerpt of the reference textbook, labeled
// "<document>:chunk_<n>" and carrying its embedding vector.
type CorpusChunk struct {
	Id             uuid.UUID
	Source         string
	Document       string
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
}
