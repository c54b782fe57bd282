package search

import (
	"context"
	"fmt"
	"log"

	"nephro-assistant-be/internal/repository/contract"
	"nephro-assistant-be/internal/repository/unitofwork"
	"nephro-assistant-be/pkg/embedding"
)

// Orchestrator handles vector search over the corpus embeddings
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	logger            *log.Logger
}

// NewOrchestrator creates a new search orchestrator
func NewOrchestrator(embeddingProvider embedding.EmbeddingProvider, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

// Config encapsulates search parameters
type Config struct {
	Threshold float64
	TopK      int
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		Threshold: 0.0, // keep everything, answer quality gating happens downstream
		TopK:      5,
	}
}

// Execute embeds the query and returns the nearest corpus chunks, best first.
func (o *Orchestrator) Execute(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	query string,
	config Config,
) ([]*contract.ScoredCorpusChunk, error) {

	// Generate embedding
	embeddingRes, err := o.embeddingProvider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	// Execute vector search
	scoredResults, err := uow.CorpusEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		embeddingRes.Embedding.Values,
		config.TopK,
		config.Threshold,
	)
	if err != nil {
		o.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	o.logger.Printf("[DEBUG] Raw search results: %d chunks for query %q", len(scoredResults), query)
	for i, res := range scoredResults {
		o.logger.Printf("[DEBUG] Candidate %d: Score=%.4f Source=%s", i+1, res.Similarity, res.Chunk.Source)
	}

	return scoredResults, nil
}
