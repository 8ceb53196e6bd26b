package eval

import (
	"fmt"
	"math"
	"strings"
)

// Keyword lists for the length-based heuristic. Matched as case-insensitive
// substrings, counted once per keyword.
var (
	scriptPositiveKeywords = []string{"creative", "innovative", "compelling", "engaging", "unique"}
	scriptNegativeKeywords = []string{"generic", "boring", "unclear", "confusing"}
)

// ScriptReviewer evaluates creative scripts. The score is a saturating
// function of content length adjusted by keyword hits, clamped to
// [0.10, 0.95]. This is the default agent for evaluative queries.
type ScriptReviewer struct{}

var _ Agent = (*ScriptReviewer)(nil)

func NewScriptReviewer() *ScriptReviewer {
	return &ScriptReviewer{}
}

func (a *ScriptReviewer) Name() string {
	return "script_reviewer"
}

func (a *ScriptReviewer) Evaluate(content, prompt, rubric string) *Result {
	// The rubric is passed through for future model-backed reviewers; the
	// heuristic here does not consume it.
	contentLength := len(content)
	baseScore := math.Min(0.5+(float64(contentLength)/2000.0)*0.3, 0.95)

	contentLower := strings.ToLower(content)
	positiveCount := 0
	for _, kw := range scriptPositiveKeywords {
		if strings.Contains(contentLower, kw) {
			positiveCount++
		}
	}
	negativeCount := 0
	for _, kw := range scriptNegativeKeywords {
		if strings.Contains(contentLower, kw) {
			negativeCount++
		}
	}

	adjustment := float64(positiveCount)*0.05 - float64(negativeCount)*0.1
	finalScore := math.Max(0.1, math.Min(0.95, baseScore+adjustment))
	finalScore = round2(finalScore)

	var verdict, risks, benefits string
	switch {
	case finalScore >= 0.7:
		verdict = "Good fit"
		risks = "Minor concerns about pacing in the middle section."
		benefits = "Strong narrative structure with compelling character development."
	case finalScore >= 0.5:
		verdict = "Needs revision"
		risks = "Some structural issues and unclear character motivations."
		benefits = "Solid concept with potential for improvement."
	default:
		verdict = "Requires significant work"
		risks = "Multiple structural and narrative issues identified."
		benefits = "Core idea has potential but needs substantial development."
	}

	return &Result{
		AgentUsed: a.Name(),
		Summary: fmt.Sprintf(
			"Script evaluation completed. Content length: %d characters. Overall assessment: %s.",
			contentLength, strings.ToLower(verdict),
		),
		Score: finalScore,
		Details: map[string]any{
			"verdict":          verdict,
			"risks":            risks,
			"benefits":         benefits,
			"content_length":   contentLength,
			"evaluation_notes": "This is a mock evaluation. In production, this would include detailed analysis from an AI agent.",
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
