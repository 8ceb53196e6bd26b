package dto

import "mime/multipart"

// QueryRequest carries the assembled multipart fields of POST /query.
// Every field is optional on its own; the service rejects the request when
// no content source yields text.
type QueryRequest struct {
	TextInput  string
	Prompt     string
	ScriptFile *multipart.FileHeader
	RubricFile *multipart.FileHeader
}

// QueryResponse is the raw /query contract payload.
type QueryResponse struct {
	AgentUsed string         `json:"agent_used"`
	Summary   string         `json:"summary"`
	Score     float64        `json:"score"`
	Details   map[string]any `json:"details"`
}

// HealthResponse is the GET / payload.
type HealthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
