package provider

import (
	"context"
	"errors"
	"time"

	"github.com/redraft-dev/redraft/internal/events"
	"github.com/redraft-dev/redraft/internal/verdict"
)

// DefaultCriteria are the review criteria applied when none are configured
var DefaultCriteria = []string{
	"The draft addresses the full request",
	"Claims are accurate and internally consistent",
	"The writing is clear and appropriately concise",
}

// DefaultRetryOnMalformed is the retry budget for unparseable verdicts
const DefaultRetryOnMalformed = 1

// retryDelay spaces out verdict re-requests after malformed output
const retryDelay = 1 * time.Second

// Publisher abstracts event publishing for testing
type Publisher interface {
	Emit(e events.Event)
}

// EvaluatorOptions configures a provider-backed evaluator
type EvaluatorOptions struct {
	// Criteria are the review criteria included in the prompt
	// (defaults to DefaultCriteria)
	Criteria []string

	// RetryOnMalformed is how many times to re-request a verdict when
	// the output fails schema validation (default: 1)
	RetryOnMalformed int

	// RunID correlates emitted events (optional)
	RunID string

	// Publisher receives verdict.malformed events (optional)
	Publisher Publisher
}

// Evaluator adapts a Provider to the controller's evaluator contract.
// Malformed verdicts are re-requested up to the configured budget, then
// resolved as a conservative rejection carrying the raw output. Only
// provider failures are returned as errors.
type Evaluator struct {
	provider Provider
	opts     EvaluatorOptions
}

// NewEvaluator wraps a provider for use as a loop evaluator
func NewEvaluator(p Provider, opts EvaluatorOptions) *Evaluator {
	if len(opts.Criteria) == 0 {
		opts.Criteria = DefaultCriteria
	}
	if opts.RetryOnMalformed < 0 {
		opts.RetryOnMalformed = 0
	}
	return &Evaluator{provider: p, opts: opts}
}

// Evaluate requests a verdict for the output and parses it
func (e *Evaluator) Evaluate(ctx context.Context, request, output string) (verdict.Verdict, error) {
	prompt := BuildEvaluatorPrompt(request, output, e.opts.Criteria)

	var lastRaw string
	var lastErr error

	for attempt := 0; attempt <= e.opts.RetryOnMalformed; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return verdict.Verdict{}, ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		raw, err := e.provider.Invoke(ctx, prompt)
		if err != nil {
			return verdict.Verdict{}, err
		}

		v, err := verdict.Parse(raw)
		if err == nil {
			return v, nil
		}

		var sErr verdict.SchemaError
		if !errors.As(err, &sErr) {
			return verdict.Verdict{}, err
		}

		lastRaw = raw
		lastErr = err
		e.emit(events.NewEvent(events.VerdictMalformed, e.opts.RunID).WithPayload(map[string]any{
			"parse_error": err.Error(),
			"retry":       attempt,
		}))
	}

	// Retry budget exhausted: ambiguous output is treated as rejection
	rejection := verdict.Rejection(lastRaw)
	if lastErr != nil {
		rejection.Summary = lastErr.Error()
	}
	return rejection, nil
}

func (e *Evaluator) emit(evt events.Event) {
	if e.opts.Publisher != nil {
		e.opts.Publisher.Emit(evt)
	}
}
