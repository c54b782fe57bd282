package store

// Citation is a retrieved corpus chunk attached to a RAG answer: the chunk's
// source label (e.g. "nephrology_textbook.pdf:chunk_42") plus its raw excerpt.
type Citation struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// WebSource is a single web search hit backing a web answer.
type WebSource struct {
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Patient is the read-only view of a patient record used by the agents.
type Patient struct {
	Id                    int64  `json:"id"`
	Name                  string `json:"name"`
	Age                   int    `json:"age"`
	DischargeDate         string `json:"discharge_date"`
	PrimaryDiagnosis      string `json:"primary_diagnosis"`
	Medications           string `json:"medications"`
	DietaryRestrictions   string `json:"dietary_restrictions"`
	FollowUp              string `json:"follow_up"`
	WarningSigns          string `json:"warning_signs"`
	DischargeInstructions string `json:"discharge_instructions"`
}

// Session represents the active chat session state in memory
type Session struct {
	ID string `json:"id"`

	// THE WORKBENCH (the patient currently being discussed)
	CurrentPatient *Patient `json:"current_patient"`

	// THE WAITING ROOM (lookup matches found but not yet selected)
	Candidates []Patient `json:"candidates"`
}

// HasPatient reports whether a patient record has been selected for this session.
func (s *Session) HasPatient() bool {
	return s.CurrentPatient != nil
}

// AwaitingDisambiguation reports whether a numbered menu is pending.
func (s *Session) AwaitingDisambiguation() bool {
	return len(s.Candidates) > 0
}
