package provider

import (
	"context"
	"strings"

	"github.com/redraft-dev/redraft/internal/verdict"
)

// HeuristicEvaluator judges drafts with deterministic quality
// indicators: minimum length, question density, presence of substantive
// content, and absence of failure phrases. It needs no model and is
// useful for offline runs and demos.
type HeuristicEvaluator struct {
	// MinLength is the minimum acceptable draft length in characters
	MinLength int

	// MaxQuestions caps how many question marks a draft may contain
	MaxQuestions int

	// RequiredIndicators pass when at least one appears in the draft
	RequiredIndicators []string

	// FailureIndicators reject the draft when any appears
	FailureIndicators []string

	// MinScore is how many of the four indicator groups must pass
	MinScore int
}

// NewHeuristicEvaluator returns a heuristic evaluator with defaults
func NewHeuristicEvaluator() *HeuristicEvaluator {
	return &HeuristicEvaluator{
		MinLength:          50,
		MaxQuestions:       2,
		RequiredIndicators: []string{"help", "answer", "response", "solution"},
		FailureIndicators:  []string{"error", "failed", "cannot", "don't know"},
		MinScore:           3,
	}
}

// Evaluate scores the output against each indicator group and accepts
// when enough groups pass. Rejections carry one feedback line per
// failed group.
func (h *HeuristicEvaluator) Evaluate(ctx context.Context, request, output string) (verdict.Verdict, error) {
	lower := strings.ToLower(output)

	longEnough := len(output) > h.MinLength
	fewQuestions := strings.Count(output, "?") <= h.MaxQuestions
	hasContent := containsAny(lower, h.RequiredIndicators)
	noFailures := !containsAny(lower, h.FailureIndicators)

	score := 0
	for _, pass := range []bool{longEnough, fewQuestions, hasContent, noFailures} {
		if pass {
			score++
		}
	}

	if score >= h.MinScore {
		return verdict.Verdict{
			Accepted: true,
			Summary:  "draft meets quality indicators",
		}, nil
	}

	var issues []verdict.FeedbackItem
	if !longEnough {
		issues = append(issues, verdict.FeedbackItem{
			Issue:      "response is too short",
			Suggestion: "expand the draft with substantive detail",
		})
	}
	if !fewQuestions {
		issues = append(issues, verdict.FeedbackItem{
			Issue:      "too many questions",
			Suggestion: "provide definitive answers instead of asking back",
		})
	}
	if !hasContent {
		issues = append(issues, verdict.FeedbackItem{
			Issue:      "response lacks substantive content",
			Suggestion: "directly address the request",
		})
	}
	if !noFailures {
		issues = append(issues, verdict.FeedbackItem{
			Issue:      "response contains failure language",
			Suggestion: "remove hedging and resolve the request",
		})
	}

	return verdict.Verdict{
		Accepted: false,
		Feedback: verdict.FormatFeedback(issues),
		Summary:  "draft fails quality indicators",
	}, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
