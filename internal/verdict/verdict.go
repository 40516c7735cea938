package verdict

import (
	"fmt"
	"strings"
)

// Verdict is an evaluator's judgment of a single generation attempt
type Verdict struct {
	// Accepted is true when the output passed review
	Accepted bool

	// Feedback is actionable revision guidance (set on rejection)
	Feedback string

	// Summary is an optional one-line overview from the evaluator
	Summary string

	// RawOutput preserves the original evaluator output for debugging
	RawOutput string
}

// FeedbackItem is a single piece of actionable feedback
type FeedbackItem struct {
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Rejection builds a conservative rejection verdict from unparseable
// evaluator output. Ambiguous verdicts are always treated as rejections;
// the raw output is carried as feedback so the generator can react to it.
func Rejection(raw string) Verdict {
	feedback := strings.TrimSpace(raw)
	if feedback == "" {
		feedback = "evaluator returned no usable verdict"
	}
	return Verdict{
		Accepted:  false,
		Feedback:  feedback,
		RawOutput: raw,
	}
}

// FormatFeedback renders feedback items as revision guidance text
func FormatFeedback(items []FeedbackItem) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("- %s", item.Issue))
		if item.Suggestion != "" {
			sb.WriteString(fmt.Sprintf(" (suggestion: %s)", item.Suggestion))
		}
	}
	return sb.String()
}
