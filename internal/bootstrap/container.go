package bootstrap

import (
	"log"

	"nephro-assistant-be/internal/config"
	"nephro-assistant-be/internal/controller"
	"nephro-assistant-be/internal/pkg/logger"
	"nephro-assistant-be/internal/repository/memory"
	"nephro-assistant-be/internal/repository/unitofwork"
	"nephro-assistant-be/internal/service"
	"nephro-assistant-be/pkg/agent/clinical"
	"nephro-assistant-be/pkg/agent/receptionist"
	"nephro-assistant-be/pkg/embedding"
	"nephro-assistant-be/pkg/llm/factory"
	"nephro-assistant-be/pkg/rag"
	"nephro-assistant-be/pkg/rag/search"
	"nephro-assistant-be/pkg/websearch"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	PatientController controller.IPatientController

	// Facades shared with the offline commands
	UowFactory        unitofwork.RepositoryFactory
	EmbeddingProvider embedding.EmbeddingProvider
	SysLogger         logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := logger.NewPipelineLogger(cfg.App.PipelineLogPath)

	// 2. AI Providers
	embeddingProvider := NewEmbeddingProvider(cfg)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Retrieval Pipeline
	searchOrchestrator := search.NewOrchestrator(embeddingProvider, pipelineLogger)
	ragEngine := rag.NewEngine(llmProvider, searchOrchestrator, uowFactory, pipelineLogger)
	webClient := websearch.NewClient(cfg.Keys.SerpAPI)

	// 4. Agents
	patientDirectory := service.NewPatientDirectory(uowFactory)
	receptionistAgent := receptionist.NewAgent(patientDirectory, llmProvider, pipelineLogger)
	clinicalAgent := clinical.NewAgent(ragEngine, webClient, pipelineLogger)

	// 5. Session Orchestrator
	sessionRepo := memory.NewSessionRepository()
	chatService := service.NewChatService(sessionRepo, receptionistAgent, clinicalAgent, sysLogger)

	return &Container{
		ChatController:    controller.NewChatController(chatService),
		PatientController: controller.NewPatientController(chatService),

		UowFactory:        uowFactory,
		EmbeddingProvider: embeddingProvider,
		SysLogger:         sysLogger,
	}
}

// NewEmbeddingProvider picks the configured embedding backend. Shared with
// cmd/index so the query and document embeddings always come from the same
// model.
func NewEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	if cfg.Ai.EmbeddingProvider == "gemini" {
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
}
