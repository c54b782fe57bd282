package dto

type ChatRequest struct {
	Text        string `json:"text" validate:"required"`
	PatientName string `json:"patient_name"`
	SessionID   string `json:"session_id"`
}

type CitationResponse struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// ChatResponse is the agent reply envelope. SourceType, Citations and Sources
// only appear on grounded clinical answers; Sources carries bare links, the
// snippets stay server-side.
type ChatResponse struct {
	Response   string             `json:"response"`
	Agent      string             `json:"agent"`
	SourceType string             `json:"source_type,omitempty"`
	Citations  []CitationResponse `json:"citations,omitempty"`
	Sources    []string           `json:"sources,omitempty"`
}

type PatientLookupResponse struct {
	Response string `json:"response"`
}
