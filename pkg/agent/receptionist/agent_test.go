package receptionist

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"nephro-assistant-be/pkg/llm"
	"nephro-assistant-be/pkg/store"
)

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

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestAgent(dir *fakeDirectory, model *fakeLLM) *Agent {
	return NewAgent(dir, model, testLogger())
}

func TestExtractName(t *testing.T) {
	a := newTestAgent(&fakeDirectory{}, &fakeLLM{})

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"two-token introduction", "Hi, I'm John Doe and I was discharged yesterday", "John Doe"},
		{"one-token introduction", "I'm John", "John"},
		{"i am variant", "Hello, I am Maria Garcia", "Maria Garcia"},
		{"my name is variant", "My name is Ahmed", "Ahmed"},
		{"call me two tokens", "Call me Li Wei please", "Li Wei"},
		{"call me single token has no pattern", "Call me Bob", ""},
		{"case insensitive", "i'm john doe", "john doe"},
		{"no introduction", "What are my medications?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.ExtractName(tt.message); got != tt.want {
				t.Errorf("ExtractName(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestHandleNameNoMatch(t *testing.T) {
	a := newTestAgent(&fakeDirectory{}, &fakeLLM{})
	session := &store.Session{ID: "s1"}

	reply := a.HandleName(context.Background(), session, "Nobody")

	want := "❌ Sorry, I couldn't find any patient named 'Nobody'. Please check and try again."
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if session.HasPatient() || session.AwaitingDisambiguation() {
		t.Error("session state should be unchanged on no match")
	}
}

func TestHandleNameLookupErrorReadsAsNoMatch(t *testing.T) {
	a := newTestAgent(&fakeDirectory{err: errors.New("db down")}, &fakeLLM{})
	session := &store.Session{ID: "s1"}

	reply := a.HandleName(context.Background(), session, "John")

	if !strings.Contains(reply, "couldn't find any patient named 'John'") {
		t.Errorf("reply = %q, want the apology message", reply)
	}
	if session.HasPatient() {
		t.Error("no patient should be selected after a failed lookup")
	}
}

func TestHandleNameSingleMatch(t *testing.T) {
	patient := store.Patient{
		Id: 1, Name: "John Doe", Age: 58,
		PrimaryDiagnosis:      "CKD Stage 3",
		Medications:           "Lisinopril 10mg daily",
		FollowUp:              "Nephrology clinic in 2 weeks",
		DischargeInstructions: "Monitor blood pressure daily",
	}
	a := newTestAgent(&fakeDirectory{patients: []store.Patient{patient}}, &fakeLLM{})
	session := &store.Session{ID: "s1"}

	reply := a.HandleName(context.Background(), session, "John")

	if !strings.HasPrefix(reply, "📄 Found your discharge summary:") {
		t.Errorf("reply = %q, want discharge summary", reply)
	}
	for _, want := range []string{"Name: John Doe", "Age: 58", "Diagnosis: CKD Stage 3", "How have you been feeling since your discharge?"} {
		if !strings.Contains(reply, want) {
			t.Errorf("summary missing %q", want)
		}
	}
	if !session.HasPatient() || session.CurrentPatient.Id != 1 {
		t.Error("patient should be selected")
	}
}

func TestHandleNameMultipleMatches(t *testing.T) {
	matches := []store.Patient{
		{Id: 1, Name: "John Doe", Age: 58},
		{Id: 2, Name: "John Smith", Age: 64},
	}
	a := newTestAgent(&fakeDirectory{patients: matches}, &fakeLLM{})
	session := &store.Session{ID: "s1"}

	reply := a.HandleName(context.Background(), session, "John")

	want := "🔍 I found multiple matches:\n1. John Doe (age: 58)\n2. John Smith (age: 64)\nPlease type the number of your record."
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if session.HasPatient() {
		t.Error("no patient should be selected while disambiguating")
	}
	if !session.AwaitingDisambiguation() {
		t.Error("candidates should be pending")
	}
}

func TestSelectMatch(t *testing.T) {
	candidates := []store.Patient{
		{Id: 1, Name: "John Doe", Age: 58},
		{Id: 2, Name: "John Smith", Age: 64},
	}

	t.Run("valid selection", func(t *testing.T) {
		a := newTestAgent(&fakeDirectory{}, &fakeLLM{})
		session := &store.Session{ID: "s1", Candidates: append([]store.Patient{}, candidates...)}

		reply := a.SelectMatch(session, 2)

		if !strings.Contains(reply, "Name: John Smith") {
			t.Errorf("reply = %q, want John Smith summary", reply)
		}
		if session.CurrentPatient == nil || session.CurrentPatient.Id != 2 {
			t.Error("second candidate should be selected")
		}
		if session.AwaitingDisambiguation() {
			t.Error("candidates should be cleared after selection")
		}
	})

	t.Run("out of range keeps menu pending", func(t *testing.T) {
		a := newTestAgent(&fakeDirectory{}, &fakeLLM{})
		session := &store.Session{ID: "s1", Candidates: append([]store.Patient{}, candidates...)}

		reply := a.SelectMatch(session, 5)

		if reply != "❌ Invalid number. Please try again." {
			t.Errorf("reply = %q", reply)
		}
		if !session.AwaitingDisambiguation() {
			t.Error("candidates should stay pending after an invalid choice")
		}
	})

	t.Run("zero is invalid", func(t *testing.T) {
		a := newTestAgent(&fakeDirectory{}, &fakeLLM{})
		session := &store.Session{ID: "s1", Candidates: append([]store.Patient{}, candidates...)}

		if reply := a.SelectMatch(session, 0); reply != "❌ Invalid number. Please try again." {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("no pending menu", func(t *testing.T) {
		a := newTestAgent(&fakeDirectory{}, &fakeLLM{})
		session := &store.Session{ID: "s1"}

		if reply := a.SelectMatch(session, 1); reply != "❌ No multiple options to choose from." {
			t.Errorf("reply = %q", reply)
		}
	})
}

func TestIsMedicalQuery(t *testing.T) {
	tests := []struct {
		name    string
		message string
		llm     *fakeLLM
		want    bool
	}{
		{
			name:    "strong keyword skips llm",
			message: "What does my creatinine level mean?",
			llm:     &fakeLLM{err: errors.New("should not matter")},
			want:    true,
		},
		{
			name:    "llm says yes",
			message: "My head hurts a lot",
			llm:     &fakeLLM{reply: "Yes"},
			want:    true,
		},
		{
			name:    "llm yes with elaboration",
			message: "My head hurts a lot",
			llm:     &fakeLLM{reply: "  yes, this is a health question"},
			want:    true,
		},
		{
			name:    "llm says no",
			message: "What time do you close?",
			llm:     &fakeLLM{reply: "No"},
			want:    false,
		},
		{
			name:    "llm yes too late in reply is ignored",
			message: "What time do you close?",
			llm:     &fakeLLM{reply: "hard to say, but yes"},
			want:    false,
		},
		{
			name:    "llm failure falls back to broad keywords",
			message: "I need a refill of my medication",
			llm:     &fakeLLM{err: errors.New("connection refused")},
			want:    true,
		},
		{
			name:    "llm failure and no keyword",
			message: "Thanks for your help",
			llm:     &fakeLLM{err: errors.New("connection refused")},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(&fakeDirectory{}, tt.llm)
			if got := a.IsMedicalQuery(context.Background(), tt.message); got != tt.want {
				t.Errorf("IsMedicalQuery(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestHandleMessage(t *testing.T) {
	t.Run("medical routes to clinical", func(t *testing.T) {
		a := newTestAgent(&fakeDirectory{}, &fakeLLM{reply: "yes"})

		reply, toClinical := a.HandleMessage(context.Background(), "my kidney hurts")

		if !toClinical {
			t.Error("expected routing to clinical")
		}
		if reply != "I will connect you to our clinical agent for your medical question." {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("non-medical stays at front desk", func(t *testing.T) {
		a := newTestAgent(&fakeDirectory{}, &fakeLLM{reply: "no"})

		reply, toClinical := a.HandleMessage(context.Background(), "thanks, that is all")

		if toClinical {
			t.Error("expected routing to receptionist")
		}
		if reply != "How else may I assist you?" {
			t.Errorf("reply = %q", reply)
		}
	})
}
