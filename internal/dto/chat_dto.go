package dto

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type MessageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatSettingsRequest updates a session's backend selection and generation
// parameters. The bounds here are the input-surface enforcement; the
// pipeline passes any in-range value through unchanged.
type ChatSettingsRequest struct {
	Backend           string  `json:"backend" validate:"required,oneof=adapter_gpu adapter_cpu_base open_demo dummy_echo"`
	BaseModel         string  `json:"base_model" validate:"required_if=Backend adapter_cpu_base"`
	Temperature       float64 `json:"temperature" validate:"gte=0,lte=2"`
	TopP              float64 `json:"top_p" validate:"gte=0.1,lte=1"`
	RepetitionPenalty float64 `json:"repetition_penalty" validate:"gte=1,lte=2"`
	MaxNewTokens      int     `json:"max_new_tokens" validate:"gte=16,lte=2048"`
}

type ChatSettingsResponse struct {
	Backend           string  `json:"backend"`
	BaseModel         string  `json:"base_model,omitempty"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	MaxNewTokens      int     `json:"max_new_tokens"`
}

// TurnRequest is one inbound websocket chat turn.
type TurnRequest struct {
	Content string `json:"content" validate:"required"`
}

// StreamEvent is one outbound websocket frame: a fragment while generation
// runs, then a final done or error frame.
type StreamEvent struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`    // fragment
	Content string `json:"content,omitempty"` // done: the full assistant turn
	Message string `json:"message,omitempty"` // error
	Partial string `json:"partial,omitempty"` // error: output collected before failure
}
