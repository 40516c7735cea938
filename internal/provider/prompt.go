package provider

import (
	"fmt"
	"strings"

	"github.com/redraft-dev/redraft/internal/conversation"
)

// BuildGeneratorPrompt renders the conversation as a transcript and
// instructs the provider to produce the next assistant reply. Retry
// feedback turns are already present in the conversation, so a revision
// attempt needs no special handling here.
func BuildGeneratorPrompt(conv *conversation.Conversation) string {
	var sb strings.Builder

	sb.WriteString("You are drafting the next assistant reply in the conversation below.\n")
	sb.WriteString("Respond with the reply text only, no commentary about the conversation.\n\n")

	for _, turn := range conv.Turns() {
		sb.WriteString(fmt.Sprintf("[%s]\n%s\n\n", turn.Role, turn.Content))
	}

	sb.WriteString("[assistant]\n")
	return sb.String()
}

// BuildEvaluatorPrompt asks the provider to judge an output against the
// original request and emit a machine-readable verdict.
func BuildEvaluatorPrompt(request, output string, criteria []string) string {
	var sb strings.Builder

	sb.WriteString("Review the draft below against the original request.\n\n")
	sb.WriteString(fmt.Sprintf("Original request:\n%s\n\n", request))
	sb.WriteString(fmt.Sprintf("Draft:\n%s\n\n", output))

	sb.WriteString("Review criteria:\n")
	for i, c := range criteria {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c))
	}

	sb.WriteString(`
Output format (MUST be valid JSON):
{
  "verdict": "approve" | "revise",
  "summary": "one-line overview",
  "feedback": [
    { "issue": "...", "suggestion": "..." }
  ]
}

Use "approve" only when the draft satisfies every criterion.
When the verdict is "revise", feedback must contain at least one item.`)

	return sb.String()
}
