package eval

import (
	"strings"
	"testing"
)

func TestRouteAgentSelection(t *testing.T) {
	r := NewRouter()

	tests := []struct {
		name      string
		prompt    string
		wantAgent string
	}{
		{"empty prompt defaults to script reviewer", "", "script_reviewer"},
		{"generic evaluative prompt", "Please review my screenplay", "script_reviewer"},
		{"impact keyword", "check social impact", "impact_agent"},
		{"sensitivity keyword", "is this content sensitive?", "impact_agent"},
		{"keyword inside a word", "representation matters here", "impact_agent"},
		{"uppercase keyword", "ANY ETHICAL CONCERNS?", "impact_agent"},
		{"diversity keyword", "evaluate diversity angle", "impact_agent"},
		{"unrelated prompt", "rate the dialogue quality", "script_reviewer"},
		{"whitespace only prompt", "   ", "script_reviewer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Route("some script content", tt.prompt, "")
			if got.AgentUsed != tt.wantAgent {
				t.Errorf("Route(prompt=%q).AgentUsed = %q, want %q", tt.prompt, got.AgentUsed, tt.wantAgent)
			}
		})
	}
}

func TestRouteDependsOnPromptOnly(t *testing.T) {
	r := NewRouter()

	// Content full of impact keywords must not influence routing.
	content := "a story about diversity, inclusion and social impact"
	got := r.Route(content, "review the plot structure", "")
	if got.AgentUsed != "script_reviewer" {
		t.Errorf("routing leaked content into agent selection: got %q", got.AgentUsed)
	}

	// Same for the rubric.
	got = r.Route("plain text", "review the plot structure", "judge social impact harshly")
	if got.AgentUsed != "script_reviewer" {
		t.Errorf("routing leaked rubric into agent selection: got %q", got.AgentUsed)
	}
}

func TestRouteEveryKeyword(t *testing.T) {
	r := NewRouter()
	for _, kw := range impactKeywords {
		got := r.Route("content", "tell me about "+kw+" please", "")
		if got.AgentUsed != "impact_agent" {
			t.Errorf("keyword %q did not route to impact agent", kw)
		}
	}
}

func TestRouteEmptyContentStillRoutes(t *testing.T) {
	r := NewRouter()
	for _, prompt := range []string{"", "check impact"} {
		got := r.Route("", prompt, "")
		if got == nil {
			t.Fatalf("Route returned nil for empty content, prompt=%q", prompt)
		}
		if got.Score < 0 || got.Score > 1 {
			t.Errorf("score out of range for empty content: %v", got.Score)
		}
	}
}

func TestRouteCaseInsensitive(t *testing.T) {
	r := NewRouter()
	got := r.Route("content", strings.ToUpper("social IMPACT analysis"), "")
	if got.AgentUsed != "impact_agent" {
		t.Errorf("case-insensitive match failed: got %q", got.AgentUsed)
	}
}
