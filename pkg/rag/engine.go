package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"nephro-assistant-be/internal/repository/unitofwork"
	"nephro-assistant-be/pkg/llm"
	"nephro-assistant-be/pkg/rag/search"
	"nephro-assistant-be/pkg/store"
)

// Answer is a grounded RAG result: the synthesized text plus one citation per
// retrieved chunk, in retrieval-rank order (duplicates allowed).
type Answer struct {
	Text       string
	SourceType string
	Citations  []store.Citation
}

// querySynonyms drives ExpandQuery. Order matters: only the first trigger
// found in the query produces variants.
var querySynonyms = []struct {
	trigger  string
	variants []string
}{
	{"symptoms", []string{"signs", "manifestations", "clinical features"}},
	{"treatment", []string{"management", "therapy"}},
	{"cause", []string{"etiology", "reason", "origin"}},
}

const qaPrompt = `Use the following extracts from a nephrology reference to answer the question at the end. If you don't know the answer from the extracts, just say that you don't know. Don't try to make up an answer.

%s

Question: %s
Answer:`

// Engine answers questions over the indexed corpus: retrieve top-k chunks,
// stuff them into a single QA prompt, synthesize with the LLM.
type Engine struct {
	llmProvider llm.LLMProvider
	search      *search.Orchestrator
	uowFactory  unitofwork.RepositoryFactory
	logger      *log.Logger
}

func NewEngine(
	llmProvider llm.LLMProvider,
	searchOrchestrator *search.Orchestrator,
	uowFactory unitofwork.RepositoryFactory,
	logger *log.Logger,
) *Engine {
	return &Engine{
		llmProvider: llmProvider,
		search:      searchOrchestrator,
		uowFactory:  uowFactory,
		logger:      logger,
	}
}

// ExpandQuery returns the query plus synonym rewrites for the first matching
// trigger word. The rewrites are substring replacements on the lowercased
// query. No trigger means the query comes back alone.
func (e *Engine) ExpandQuery(query string) []string {
	lower := strings.ToLower(query)
	for _, syn := range querySynonyms {
		if strings.Contains(lower, syn.trigger) {
			expanded := []string{query}
			for _, v := range syn.variants {
				expanded = append(expanded, strings.ReplaceAll(lower, syn.trigger, v))
			}
			return expanded
		}
	}
	return []string{query}
}

// GetAnswer retrieves the kChunks nearest chunks and synthesizes one answer
// from all of them. patientContext is accepted for future personalization and
// currently unused.
func (e *Engine) GetAnswer(ctx context.Context, question string, kChunks int, patientContext *store.Patient) (*Answer, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)

	config := search.DefaultConfig()
	config.TopK = kChunks

	chunks, err := e.search.Execute(ctx, uow, question, config)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	var contextParts []string
	citations := make([]store.Citation, 0, len(chunks))
	for _, c := range chunks {
		contextParts = append(contextParts, fmt.Sprintf("Content: %s\nSource: %s", c.Chunk.Document, c.Chunk.Source))
		citations = append(citations, store.Citation{
			Source: c.Chunk.Source,
			Text:   c.Chunk.Document,
		})
	}

	prompt := fmt.Sprintf(qaPrompt, strings.Join(contextParts, "\n\n"), question)

	e.logger.Printf("[INFO] Synthesizing answer for %q from %d chunks", question, len(chunks))

	response, err := e.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("answer synthesis failed: %w", err)
	}

	return &Answer{
		Text:       response,
		SourceType: "textbook",
		Citations:  citations,
	}, nil
}

// unknownPhrases mark an answer as a non-answer regardless of length.
var unknownPhrases = []string{"i don't know", "not found", "couldn't find", "no relevant information"}

// IsUnknownAnswer reports whether the synthesized text is a refusal rather
// than an answer.
func IsUnknownAnswer(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range unknownPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
