package service

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"nephro-assistant-be/internal/dto"
	"nephro-assistant-be/internal/repository/memory"
	"nephro-assistant-be/pkg/agent/clinical"
	"nephro-assistant-be/pkg/agent/receptionist"
	"nephro-assistant-be/pkg/llm"
	"nephro-assistant-be/pkg/rag"
	"nephro-assistant-be/pkg/store"
	"nephro-assistant-be/pkg/websearch"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeDirectory struct {
	patients []store.Patient
	err      error
}

func (f *fakeDirectory) FindByName(ctx context.Context, fragment string) ([]store.Patient, error) {
	return f.patients, f.err
}

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.reply, f.err
}

type fakeEngine struct {
	answer *rag.Answer
	err    error
}

func (f *fakeEngine) ExpandQuery(query string) []string { return []string{query} }

func (f *fakeEngine) GetAnswer(ctx context.Context, question string, kChunks int, patientContext *store.Patient) (*rag.Answer, error) {
	return f.answer, f.err
}

type fakeWeb struct {
	result websearch.Result
}

func (f *fakeWeb) Search(ctx context.Context, query string) websearch.Result {
	return f.result
}

type serviceDeps struct {
	directory *fakeDirectory
	llm       *fakeLLM
	engine    *fakeEngine
	web       *fakeWeb
	sessions  *memory.SessionRepository
}

func newTestChatService(deps serviceDeps) IChatService {
	discard := log.New(io.Discard, "", 0)
	if deps.sessions == nil {
		deps.sessions = memory.NewSessionRepository()
	}
	if deps.directory == nil {
		deps.directory = &fakeDirectory{}
	}
	if deps.llm == nil {
		deps.llm = &fakeLLM{}
	}
	if deps.engine == nil {
		deps.engine = &fakeEngine{}
	}
	if deps.web == nil {
		deps.web = &fakeWeb{}
	}

	receptionistAgent := receptionist.NewAgent(deps.directory, deps.llm, discard)
	clinicalAgent := clinical.NewAgent(deps.engine, deps.web, discard)
	return NewChatService(deps.sessions, receptionistAgent, clinicalAgent, noopLogger{})
}

func TestChatGreetsWithoutName(t *testing.T) {
	svc := newTestChatService(serviceDeps{})

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "hello there"})
	if err != nil {
		t.Fatal(err)
	}

	if res.Agent != "receptionist" {
		t.Errorf("Agent = %q", res.Agent)
	}
	if !strings.Contains(res.Response, "May I have your name") {
		t.Errorf("Response = %q, want a greeting", res.Response)
	}
}

func TestChatUsesDefaultSession(t *testing.T) {
	sessions := memory.NewSessionRepository()
	svc := newTestChatService(serviceDeps{
		sessions:  sessions,
		directory: &fakeDirectory{patients: []store.Patient{{Id: 1, Name: "John Doe", Age: 58}}},
	})

	_, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "I'm John Doe"})
	if err != nil {
		t.Fatal(err)
	}

	sess, found := sessions.Get("default")
	if !found {
		t.Fatal("expected the default session to exist")
	}
	if !sess.HasPatient() || sess.CurrentPatient.Name != "John Doe" {
		t.Error("patient should be selected on the default session")
	}
}

func TestChatDisambiguationFlow(t *testing.T) {
	sessions := memory.NewSessionRepository()
	svc := newTestChatService(serviceDeps{
		sessions: sessions,
		directory: &fakeDirectory{patients: []store.Patient{
			{Id: 1, Name: "John Doe", Age: 58},
			{Id: 2, Name: "John Smith", Age: 64},
		}},
	})

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "hello", PatientName: "John", SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Response, "I found multiple matches") {
		t.Fatalf("Response = %q, want the disambiguation menu", res.Response)
	}

	res, err = svc.Chat(context.Background(), &dto.ChatRequest{Text: " 2 ", SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Response, "Name: John Smith") {
		t.Errorf("Response = %q, want John Smith's summary", res.Response)
	}

	sess, _ := sessions.Get("s1")
	if sess.CurrentPatient == nil || sess.CurrentPatient.Id != 2 {
		t.Error("second candidate should be selected")
	}
	if sess.AwaitingDisambiguation() {
		t.Error("candidates should be cleared")
	}
}

func TestChatInvalidSelectionKeepsMenu(t *testing.T) {
	sessions := memory.NewSessionRepository()
	svc := newTestChatService(serviceDeps{
		sessions: sessions,
		directory: &fakeDirectory{patients: []store.Patient{
			{Id: 1, Name: "John Doe", Age: 58},
			{Id: 2, Name: "John Smith", Age: 64},
		}},
	})

	if _, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "hi", PatientName: "John", SessionID: "s1"}); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "9", SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Response != "❌ Invalid number. Please try again." {
		t.Errorf("Response = %q", res.Response)
	}

	sess, _ := sessions.Get("s1")
	if !sess.AwaitingDisambiguation() {
		t.Error("menu should still be pending")
	}
}

func selectPatient(t *testing.T, svc IChatService, sessionID string) {
	t.Helper()
	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "hi", PatientName: "John", SessionID: sessionID})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Response, "discharge summary") {
		t.Fatalf("Response = %q, want a selected patient", res.Response)
	}
}

func TestChatRoutesMedicalQueryToClinical(t *testing.T) {
	answer := &rag.Answer{
		Text:       "CKD is managed with blood pressure control and dietary changes over the long term.",
		SourceType: "textbook",
		Citations: []store.Citation{
			{Source: "nephrology_textbook.pdf:chunk_12", Text: "excerpt one"},
			{Source: "nephrology_textbook.pdf:chunk_31", Text: "excerpt two"},
		},
	}
	svc := newTestChatService(serviceDeps{
		directory: &fakeDirectory{patients: []store.Patient{{Id: 1, Name: "John Doe", Age: 58}}},
		engine:    &fakeEngine{answer: answer},
	})
	selectPatient(t, svc, "s1")

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "How do I manage my kidney disease?", SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}

	if res.Agent != "clinical" {
		t.Errorf("Agent = %q", res.Agent)
	}
	if res.SourceType != "textbook" {
		t.Errorf("SourceType = %q", res.SourceType)
	}
	if len(res.Citations) != 2 || res.Citations[0].Source != "nephrology_textbook.pdf:chunk_12" {
		t.Errorf("Citations = %+v", res.Citations)
	}
	if len(res.Sources) != 0 {
		t.Errorf("Sources = %v, want none for a textbook answer", res.Sources)
	}
}

func TestChatFlattensWebSourcesToLinks(t *testing.T) {
	svc := newTestChatService(serviceDeps{
		directory: &fakeDirectory{patients: []store.Patient{{Id: 1, Name: "John Doe", Age: 58}}},
		web: &fakeWeb{result: websearch.Result{
			Answer: "New trial results.",
			Sources: []store.WebSource{
				{Link: "https://example.org/a", Snippet: "snippet a"},
				{Link: "https://example.org/b", Snippet: "snippet b"},
			},
		}},
	})
	selectPatient(t, svc, "s1")

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "What are the latest kidney clinical trials?", SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}

	if res.SourceType != "web" {
		t.Errorf("SourceType = %q", res.SourceType)
	}
	if !strings.HasPrefix(res.Response, "🔎 *Web Answer:* ") {
		t.Errorf("Response = %q", res.Response)
	}
	wantSources := []string{"https://example.org/a", "https://example.org/b"}
	if len(res.Sources) != 2 || res.Sources[0] != wantSources[0] || res.Sources[1] != wantSources[1] {
		t.Errorf("Sources = %v, want %v", res.Sources, wantSources)
	}
	if len(res.Citations) != 0 {
		t.Errorf("Citations = %+v, want none for a web answer", res.Citations)
	}
}

func TestChatNonMedicalFollowUp(t *testing.T) {
	svc := newTestChatService(serviceDeps{
		directory: &fakeDirectory{patients: []store.Patient{{Id: 1, Name: "John Doe", Age: 58}}},
		llm:       &fakeLLM{reply: "no"},
	})
	selectPatient(t, svc, "s1")

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Text: "thank you so much", SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}

	if res.Agent != "receptionist" {
		t.Errorf("Agent = %q", res.Agent)
	}
	if res.Response != "How else may I assist you?" {
		t.Errorf("Response = %q", res.Response)
	}
}

func TestLookupPatientDoesNotTouchChatSessions(t *testing.T) {
	sessions := memory.NewSessionRepository()
	svc := newTestChatService(serviceDeps{
		sessions:  sessions,
		directory: &fakeDirectory{patients: []store.Patient{{Id: 1, Name: "John Doe", Age: 58}}},
	})

	res, err := svc.LookupPatient(context.Background(), "John")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Response, "discharge summary") {
		t.Errorf("Response = %q", res.Response)
	}
	if _, found := sessions.Get("default"); found {
		t.Error("lookup should not create chat sessions")
	}
}
