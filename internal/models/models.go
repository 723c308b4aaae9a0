package models

// AnalysisRequest is a single inbound message on a client connection.
// Clients may attach extra fields (such as a request_id); they are ignored.
type AnalysisRequest struct {
	Response string `json:"response"`
	Concept  string `json:"concept"`
}

// AnalysisResult is the outcome of scoring one response against a concept.
// UniqueID is minted once per computation; a cache hit returns the stored
// result with its original UniqueID.
type AnalysisResult struct {
	Concept    string  `json:"concept"`
	TotalScore float64 `json:"total_score"`
	Feedback   string  `json:"feedback"`
	UniqueID   string  `json:"unique_id"`
}

// ErrorResponse is the wire shape for every client-visible failure.
// The field names and error strings are fixed for client compatibility.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
