package eval

// Result is the uniform payload every agent produces. It is created once per
// request, never mutated, and returned to the caller as-is.
type Result struct {
	AgentUsed string         `json:"agent_used"`
	Summary   string         `json:"summary"`
	Score     float64        `json:"score"` // 0.0 to 1.0
	Details   map[string]any `json:"details"`
}

// Agent defines the contract for any scoring strategy. Implementations must
// be pure and total: any text input (empty, very long, non-ASCII) yields a
// result with Score in [0,1] and never panics. Prompt and rubric may be
// empty strings.
type Agent interface {
	Name() string
	Evaluate(content, prompt, rubric string) *Result
}
