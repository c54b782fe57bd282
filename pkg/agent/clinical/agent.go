package clinical

import (
	"context"
	"log"
	"strings"

	"nephro-assistant-be/pkg/rag"
	"nephro-assistant-be/pkg/store"
	"nephro-assistant-be/pkg/websearch"
)

// AnswerEngine is the retrieval surface the clinical agent consumes.
type AnswerEngine interface {
	ExpandQuery(query string) []string
	GetAnswer(ctx context.Context, question string, kChunks int, patientContext *store.Patient) (*rag.Answer, error)
}

// WebSearcher runs a live web query. Failures are in-band in the result.
type WebSearcher interface {
	Search(ctx context.Context, query string) websearch.Result
}

// webIntentTerms force a live web search regardless of corpus coverage.
var webIntentTerms = []string{
	"latest", "search the internet", "google", "web", "recent", "new research", "clinical trials",
}

// knownTerms force a corpus answer through even when quality gating rejected it.
var knownTerms = []string{
	"ckd", "kidney", "nephropathy", "glomerular", "proteinuria", "creatinine", "nephrotoxic",
}

// kChunks is the retrieval depth per query variant.
const kChunks = 5

// Response is a clinical answer. SourceType is "textbook" or "web" for
// grounded answers and empty otherwise.
type Response struct {
	Text       string
	SourceType string
	Citations  []store.Citation
	WebSources []store.WebSource
}

// Agent answers medical questions with a strict answer-selection policy:
// explicit web intent wins, then the first acceptable corpus answer across
// query variants, then a keyword-forced corpus answer, then whatever the last
// retrieval produced.
type Agent struct {
	engine AnswerEngine
	web    WebSearcher
	logger *log.Logger
}

func NewAgent(engine AnswerEngine, web WebSearcher, logger *log.Logger) *Agent {
	return &Agent{
		engine: engine,
		web:    web,
		logger: logger,
	}
}

// HandleMedicalQuery runs the answer-selection policy for one question.
// patientContext is passed through to retrieval for future personalization.
func (a *Agent) HandleMedicalQuery(ctx context.Context, query string, patientContext *store.Patient) Response {
	a.logger.Printf("[INFO] ClinicalAgent: Handling medical query: %s", query)
	lower := strings.ToLower(query)

	for _, term := range webIntentTerms {
		if strings.Contains(lower, term) {
			a.logger.Printf("[INFO] ClinicalAgent: Web intent detected for query: %s", query)
			result := a.web.Search(ctx, query)
			a.logger.Printf("[INFO] ClinicalAgent: Web search result: %.100s | Sources: %d", result.Answer, len(result.Sources))
			return Response{
				Text:       "🔎 *Web Answer:* " + result.Answer,
				SourceType: "web",
				WebSources: result.Sources,
			}
		}
	}

	var lastAnswer *rag.Answer
	for _, q := range a.engine.ExpandQuery(query) {
		answer, err := a.engine.GetAnswer(ctx, q, kChunks, patientContext)
		if err != nil {
			a.logger.Printf("[ERROR] ClinicalAgent: Retrieval failed for query %q: %v", q, err)
			continue
		}
		lastAnswer = answer
		a.logger.Printf("[INFO] ClinicalAgent: RAG retrieval for query %q | Citations: %d", q, len(answer.Citations))

		if !rag.IsUnknownAnswer(answer.Text) && len(strings.TrimSpace(answer.Text)) > 30 {
			a.logger.Printf("[INFO] ClinicalAgent: RAG answer found for query %q.", q)
			return a.corpusResponse(answer)
		}
	}

	if lastAnswer == nil {
		// every retrieval attempt errored
		a.logger.Printf("[ERROR] ClinicalAgent: No retrieval result available for query: %s", query)
		return Response{Text: "I'm sorry, I couldn't retrieve an answer right now. Please try again."}
	}

	for _, term := range knownTerms {
		if strings.Contains(lower, term) {
			a.logger.Printf("[INFO] ClinicalAgent: Forcing RAG for nephrology keyword in query: %s", query)
			return a.corpusResponse(lastAnswer)
		}
	}

	a.logger.Printf("[INFO] ClinicalAgent: Defaulting to RAG answer for query: %s", query)
	return a.corpusResponse(lastAnswer)
}

func (a *Agent) corpusResponse(answer *rag.Answer) Response {
	return Response{
		Text:       answer.Text,
		SourceType: answer.SourceType,
		Citations:  answer.Citations,
	}
}
