package verdict

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaError represents a validation failure in evaluator output
type SchemaError struct {
	Field   string
	Message string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("schema validation failed: %s - %s", e.Field, e.Message)
}

// Verdict values evaluators must emit
const (
	VerdictApprove = "approve"
	VerdictRevise  = "revise"
)

// ValidVerdicts defines acceptable verdict values
var ValidVerdicts = []string{VerdictApprove, VerdictRevise}

// wireVerdict is the JSON shape evaluators are prompted to produce
type wireVerdict struct {
	Verdict  string         `json:"verdict"`
	Summary  string         `json:"summary"`
	Feedback []FeedbackItem `json:"feedback"`
}

// Parse extracts the JSON verdict from evaluator output and validates it.
// Returns a SchemaError when no valid verdict can be recovered; callers
// decide whether to retry or fall back to a conservative rejection.
func Parse(output string) (Verdict, error) {
	jsonStr := extractJSON(output)
	if jsonStr == "" {
		return Verdict{}, SchemaError{Field: "json", Message: "no JSON object found in output"}
	}

	var wire wireVerdict
	if err := json.Unmarshal([]byte(jsonStr), &wire); err != nil {
		return Verdict{}, SchemaError{Field: "json", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if !isValidVerdict(wire.Verdict) {
		return Verdict{}, SchemaError{Field: "verdict", Message: fmt.Sprintf("must be one of %v, got: %q", ValidVerdicts, wire.Verdict)}
	}

	if wire.Verdict == VerdictRevise {
		if len(wire.Feedback) == 0 {
			return Verdict{}, SchemaError{Field: "feedback", Message: "at least one feedback item required when verdict is revise"}
		}
		for i, fb := range wire.Feedback {
			if fb.Issue == "" {
				return Verdict{}, SchemaError{Field: fmt.Sprintf("feedback[%d].issue", i), Message: "issue cannot be empty"}
			}
		}
	}

	return Verdict{
		Accepted:  wire.Verdict == VerdictApprove,
		Feedback:  FormatFeedback(wire.Feedback),
		Summary:   wire.Summary,
		RawOutput: output,
	}, nil
}

func isValidVerdict(v string) bool {
	for _, valid := range ValidVerdicts {
		if v == valid {
			return true
		}
	}
	return false
}

// extractJSON finds the first JSON object in the output.
// Handles JSON inside markdown code fences and bare JSON.
func extractJSON(output string) string {
	if jsonStr := extractJSONFromCodeFence(output); jsonStr != "" {
		return jsonStr
	}
	return extractJSONByBraces(output)
}

// extractJSONFromCodeFence extracts JSON from ```json or ``` fences
func extractJSONFromCodeFence(output string) string {
	markers := []string{"```json\n", "```\n"}
	for _, marker := range markers {
		start := strings.Index(output, marker)
		if start == -1 {
			continue
		}
		contentStart := start + len(marker)
		end := strings.Index(output[contentStart:], "```")
		if end == -1 {
			continue
		}
		content := strings.TrimSpace(output[contentStart : contentStart+end])
		if strings.HasPrefix(content, "{") {
			return content
		}
	}
	return ""
}

// extractJSONByBraces scans for the first { and tracks depth until the
// matching } is found. Brace characters inside strings are skipped.
func extractJSONByBraces(output string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range output {
		if start == -1 {
			if ch == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if escaped {
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return output[start : i+1]
				}
			}
		}
	}

	return ""
}
