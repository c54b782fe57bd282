package receptionist

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"nephro-assistant-be/pkg/llm"
	"nephro-assistant-be/pkg/store"
)

// PatientDirectory is the lookup surface the receptionist needs: substring
// match on patient name, matches in stored order.
type PatientDirectory interface {
	FindByName(ctx context.Context, fragment string) ([]store.Patient, error)
}

// namePatterns are tried in order; the first match wins. Two-token forms come
// before one-token forms so "I'm Jane Doe" captures the full name instead of
// just "Jane".
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)I'm\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)I am\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)My name is\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)Call me\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)I'm\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)I am\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)My name is\s+([A-Z][a-z]+)`),
}

// strongKeywords route to the clinical agent without consulting the LLM.
var strongKeywords = []string{
	"kidney", "ckd", "nephropathy", "glomerular", "proteinuria",
	"creatinine", "nephrotoxic", "bp", "pressure", "swelling",
}

// broadKeywords are the fallback classifier when the LLM is unreachable. The
// set is intentionally wider than strongKeywords.
var broadKeywords = []string{
	"pain", "symptom", "medication", "treatment", "diagnosis", "doctor", "nurse",
	"hospital", "clinic", "disease", "condition", "swelling", "bp", "pressure", "nephropathy",
}

const classifyPrompt = "Determine if the following user message is a medical or health-related question. " +
	"Reply with only 'yes' or 'no'.\n\nMessage: %s\n\nAnswer:"

// Agent is the front-desk agent: identifies the patient, disambiguates
// multiple record matches, and decides whether a message needs the clinical
// agent. All conversational state lives in the session passed to each call.
type Agent struct {
	directory   PatientDirectory
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewAgent(directory PatientDirectory, llmProvider llm.LLMProvider, logger *log.Logger) *Agent {
	return &Agent{
		directory:   directory,
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (a *Agent) Greet() string {
	return "Hello! Welcome to the Nephrology Assistant. May I have your name to look up your records?"
}

// ExtractName pulls a self-introduced name out of free text. Empty string
// means no introduction phrase matched.
func (a *Agent) ExtractName(message string) string {
	for _, pattern := range namePatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			return m[1]
		}
	}
	return ""
}

// HandleName looks the name up and either selects the single match, parks
// multiple matches in the session for disambiguation, or apologizes. A lookup
// failure is logged and presented as "no matches"; the caller cannot tell the
// difference.
func (a *Agent) HandleName(ctx context.Context, session *store.Session, name string) string {
	matches, err := a.directory.FindByName(ctx, name)
	if err != nil {
		a.logger.Printf("[ERROR] Patient lookup failed for %q: %v", name, err)
		matches = nil
	}

	if len(matches) == 0 {
		return fmt.Sprintf("❌ Sorry, I couldn't find any patient named '%s'. Please check and try again.", name)
	}

	if len(matches) > 1 {
		options := make([]string, 0, len(matches))
		for i, m := range matches {
			options = append(options, fmt.Sprintf("%d. %s (age: %d)", i+1, m.Name, m.Age))
		}
		session.Candidates = matches
		return fmt.Sprintf("🔍 I found multiple matches:\n%s\nPlease type the number of your record.", strings.Join(options, "\n"))
	}

	patient := matches[0]
	session.CurrentPatient = &patient
	session.Candidates = nil
	return a.summarizePatient(&patient)
}

// SelectMatch resolves a pending disambiguation menu with a 1-based choice.
// An out-of-range number keeps the menu pending.
func (a *Agent) SelectMatch(session *store.Session, index int) string {
	if !session.AwaitingDisambiguation() {
		return "❌ No multiple options to choose from."
	}
	if index < 1 || index > len(session.Candidates) {
		return "❌ Invalid number. Please try again."
	}

	patient := session.Candidates[index-1]
	session.CurrentPatient = &patient
	session.Candidates = nil
	return a.summarizePatient(&patient)
}

func (a *Agent) summarizePatient(p *store.Patient) string {
	a.logger.Printf("[INFO] Patient selected: %s (ID: %d)", p.Name, p.Id)
	return fmt.Sprintf(
		"📄 Found your discharge summary:\n"+
			"Name: %s\n"+
			"Age: %d\n"+
			"Diagnosis: %s\n"+
			"Medications: %s\n"+
			"Follow-up: %s\n"+
			"Instructions: %s\n\n"+
			"How have you been feeling since your discharge?\n"+
			"(You can also ask any medical questions, and I'll bring in our clinical expert.)",
		p.Name, p.Age, p.PrimaryDiagnosis, p.Medications, p.FollowUp, p.DischargeInstructions,
	)
}

// IsMedicalQuery classifies a message in three tiers: strong nephrology
// keywords first, then an LLM yes/no check, then a broad keyword fallback
// when the LLM is unreachable.
func (a *Agent) IsMedicalQuery(ctx context.Context, message string) bool {
	lower := strings.ToLower(message)

	for _, term := range strongKeywords {
		if strings.Contains(lower, term) {
			a.logger.Printf("[DEBUG] Strong nephrology keyword detected in message: %s", message)
			return true
		}
	}

	result, err := a.llmProvider.Generate(ctx, fmt.Sprintf(classifyPrompt, message), llm.WithTemperature(0))
	if err != nil {
		a.logger.Printf("[WARN] LLM failed to classify message, falling back to keyword match: %v", err)
		for _, term := range broadKeywords {
			if strings.Contains(lower, term) {
				return true
			}
		}
		return false
	}

	result = strings.ToLower(strings.TrimSpace(result))
	a.logger.Printf("[DEBUG] LLM medical classification result: %s", result)

	// lenient check: accept "yes" anywhere in the reply's first 10 characters
	head := result
	if len(head) > 10 {
		head = head[:10]
	}
	return strings.Contains(head, "yes")
}

// HandleMessage answers a message from a patient whose record is already
// selected: medical questions get a hand-off line and route to the clinical
// agent, everything else stays at the front desk.
func (a *Agent) HandleMessage(ctx context.Context, message string) (string, bool) {
	if a.IsMedicalQuery(ctx, message) {
		return "I will connect you to our clinical agent for your medical question.", true
	}
	return "How else may I assist you?", false
}
