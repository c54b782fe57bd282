package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"time"

	"nephro-assistant-be/internal/bootstrap"
	"nephro-assistant-be/internal/config"
	"nephro-assistant-be/internal/dto"
	"nephro-assistant-be/internal/repository/unitofwork"
	"nephro-assistant-be/internal/service"
	"nephro-assistant-be/pkg/corpus"
	"nephro-assistant-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
)

// The offline indexer: PDF -> clean -> chunk -> filter -> embed -> persist.
// Chunks travel over the in-process event bus so embedding uses the same
// consumer path as the server would.
func main() {
	pdfPath := flag.String("pdf", "textbook/nephrology_textbook.pdf", "path to the reference PDF")
	rebuild := flag.Bool("rebuild", true, "wipe existing corpus embeddings before indexing")
	timeout := flag.Duration("timeout", 30*time.Minute, "maximum time to wait for the pipeline to drain")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	embeddingProvider := bootstrap.NewEmbeddingProvider(cfg)

	document := filepath.Base(*pdfPath)

	color.Cyan("Extracting text from %s (skipping %d front-matter pages)...", *pdfPath, cfg.Corpus.StartPage)
	text, err := corpus.ExtractCleanText(*pdfPath, cfg.Corpus.StartPage)
	if err != nil {
		log.Fatalf("Error: Failed to extract PDF text: %v", err)
	}
	color.Cyan("Total length after cleaning: %d characters", len(text))

	chunks := corpus.ChunkAndFilter(text, document, cfg.Corpus.ChunkSize, cfg.Corpus.Overlap)
	color.Cyan("Total relevant chunks: %d", len(chunks))
	if len(chunks) == 0 {
		log.Fatal("Error: No relevant chunks produced, nothing to index")
	}

	if *rebuild {
		color.Yellow("Wiping existing corpus embeddings...")
		if err := uowFactory.NewUnitOfWork(ctx).CorpusEmbeddingRepository().DeleteAllUnscoped(ctx); err != nil {
			log.Fatalf("Error: Failed to wipe corpus embeddings: %v", err)
		}
	}

	// Event bus + embedding consumer
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	consumer := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, uowFactory, embeddingProvider)
	if err := consumer.Consume(ctx); err != nil {
		log.Fatalf("Error: Failed to start embedding consumer: %v", err)
	}

	publisher := service.NewPublisherService(pubSub, cfg.Keys.EmbedTopic)
	for _, c := range chunks {
		msg := &dto.PublishEmbedChunkMessage{
			Document:   document,
			Label:      c.Label,
			Text:       c.Text,
			ChunkIndex: c.Index,
		}
		if err := publisher.PublishChunk(msg); err != nil {
			log.Fatalf("Error: Failed to publish chunk %s: %v", c.Label, err)
		}
	}

	// Wait for the consumer to drain the topic
	expected := int64(len(chunks))
	deadline := time.Now().Add(*timeout)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		done := consumer.Processed()
		color.White("Embedded %d/%d chunks...", done, expected)
		if done >= expected {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("Error: Pipeline did not drain in time (%d/%d chunks)", done, expected)
		}
	}

	if err := pubSub.Close(); err != nil {
		log.Printf("Warn: Failed to close event bus: %v", err)
	}

	color.Green("✅ Corpus index built successfully: %d chunks from %s", expected, document)
}
