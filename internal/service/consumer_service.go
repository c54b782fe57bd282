package service

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"nephro-assistant-be/internal/dto"
	"nephro-assistant-be/internal/entity"
	"nephro-assistant-be/internal/repository/unitofwork"
	"nephro-assistant-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	Processed() int64
}

// consumerService embeds published corpus chunks and persists them. One chunk
// per message; a failed embedding Nacks so the chunk is retried.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	processed         atomic.Int64
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// Processed reports how many chunks have been persisted so far. The indexer
// polls it to know when the pipeline has drained.
func (cs *consumerService) Processed() int64 {
	return cs.processed.Load()
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	res, err := cs.embeddingProvider.Generate(payload.Text, embedding.TaskRetrievalDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for %s: %v", payload.Label, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	chunk := &entity.CorpusChunk{
		Id:             uuid.New(),
		Source:         payload.Label,
		Document:       payload.Text,
		EmbeddingValue: res.Embedding.Values,
		ChunkIndex:     payload.ChunkIndex,
		CreatedAt:      time.Now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CorpusEmbeddingRepository().Create(ctx, chunk); err != nil {
		log.Printf("[ERROR] Failed to persist chunk %s: %v", payload.Label, err)
		msg.Nack()
		return
	}

	cs.processed.Add(1)
	msg.Ack()
}
