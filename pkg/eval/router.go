package eval

import "strings"

// Prompt keywords that indicate an impact/sensitivity evaluation.
var impactKeywords = []string{
	"impact", "sensitivity", "sensitive", "social", "cultural",
	"representation", "diversity", "inclusion", "harmful", "offensive",
	"appropriate", "suitable", "concerns", "risks", "ethical",
}

// Router dispatches an evaluation request to one of the registered agents
// based on the prompt text alone. Routing is stateless and total: every
// input maps to exactly one agent.
type Router struct {
	scriptReviewer Agent
	impactAgent    Agent
}

func NewRouter() *Router {
	return &Router{
		scriptReviewer: NewScriptReviewer(),
		impactAgent:    NewImpactAgent(),
	}
}

// Route selects an agent and returns its result unchanged.
// Prompts containing any impact keyword (case-insensitive substring) go to
// the impact agent; everything else, including an empty prompt, defaults to
// the script reviewer.
func (r *Router) Route(content, prompt, rubric string) *Result {
	promptLower := strings.ToLower(prompt)
	for _, kw := range impactKeywords {
		if strings.Contains(promptLower, kw) {
			return r.impactAgent.Evaluate(content, prompt, rubric)
		}
	}
	return r.scriptReviewer.Evaluate(content, prompt, rubric)
}
