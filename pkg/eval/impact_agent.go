package eval

import (
	"fmt"
	"math"
	"strings"
)

// Sensitive topic categories. A category counts once no matter how many of
// its keywords appear.
var impactSensitiveTopics = []struct {
	topic    string
	keywords []string
}{
	{"violence", []string{"violence", "violent", "fight", "attack", "war"}},
	{"discrimination", []string{"discrimination", "prejudice", "bias", "stereotype"}},
	{"sensitive_content", []string{"trauma", "abuse", "harassment", "exploitation"}},
}

var impactPositiveIndicators = []string{"diversity", "inclusion", "empowerment", "representation", "awareness"}

// ImpactAgent evaluates content for social impact and sensitivity. Starts
// from a 0.7 base, subtracts 0.2 per detected sensitive category (floor
// 0.2) and adds 0.05 per positive indicator (ceiling 0.95).
type ImpactAgent struct{}

var _ Agent = (*ImpactAgent)(nil)

func NewImpactAgent() *ImpactAgent {
	return &ImpactAgent{}
}

func (a *ImpactAgent) Name() string {
	return "impact_agent"
}

func (a *ImpactAgent) Evaluate(content, prompt, rubric string) *Result {
	contentLower := strings.ToLower(content)

	var detectedTopics []string
	for _, cat := range impactSensitiveTopics {
		for _, kw := range cat.keywords {
			if strings.Contains(contentLower, kw) {
				detectedTopics = append(detectedTopics, cat.topic)
				break
			}
		}
	}

	baseScore := 0.7
	if len(detectedTopics) > 0 {
		baseScore = math.Max(0.2, baseScore-0.2*float64(len(detectedTopics)))
	}

	positiveCount := 0
	for _, ind := range impactPositiveIndicators {
		if strings.Contains(contentLower, ind) {
			positiveCount++
		}
	}
	baseScore = math.Min(0.95, baseScore+float64(positiveCount)*0.05)

	finalScore := round2(baseScore)

	var impactLevel, concerns, recommendations string
	switch {
	case finalScore >= 0.7:
		impactLevel = "Positive"
		concerns = "Minimal concerns. Content appears to handle sensitive topics thoughtfully."
		recommendations = "Continue current approach. Consider adding trigger warnings if needed."
	case finalScore >= 0.5:
		impactLevel = "Mixed"
		concerns = "Some sensitive content detected. Review for potential unintended harm."
		recommendations = "Consider sensitivity review and potential content warnings."
	default:
		impactLevel = "Needs Review"
		concerns = "Multiple sensitive topics identified. Requires careful evaluation."
		recommendations = "Strongly recommend sensitivity review and content modification."
	}

	topicsDetail := detectedTopics
	if len(topicsDetail) == 0 {
		topicsDetail = []string{"None detected"}
	}

	return &Result{
		AgentUsed: a.Name(),
		Summary: fmt.Sprintf(
			"Impact evaluation completed. Detected %d sensitive topic categories. Impact level: %s.",
			len(detectedTopics), strings.ToLower(impactLevel),
		),
		Score: finalScore,
		Details: map[string]any{
			"impact_level":     impactLevel,
			"concerns":         concerns,
			"recommendations":  recommendations,
			"detected_topics":  topicsDetail,
			"evaluation_notes": "This is a mock evaluation. In production, this would include detailed impact analysis from an AI agent.",
		},
	}
}
