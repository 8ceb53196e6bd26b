package chat

import (
	"fmt"
	"strings"

	"creative-eval-be/pkg/llm"
)

// FormatPrompt renders a conversation for models without a chat template:
// one "[role] content" line per message, with a trailing "[assistant]"
// marker inviting the model to continue.
func FormatPrompt(history []llm.Message) string {
	parts := make([]string, 0, len(history)+1)
	for _, m := range history {
		parts = append(parts, fmt.Sprintf("[%s] %s", m.Role, m.Content))
	}
	parts = append(parts, "[assistant]")
	return strings.Join(parts, "\n")
}

// LastUserContent returns the content of the most recent user message, or
// an empty string when the history has none.
func LastUserContent(history []llm.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return history[i].Content
		}
	}
	return ""
}
