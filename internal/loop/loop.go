package loop

import (
	"context"
	"fmt"

	"github.com/redraft-dev/redraft/internal/conversation"
	"github.com/redraft-dev/redraft/internal/events"
	"github.com/redraft-dev/redraft/internal/verdict"
)

// Generator produces a candidate output from conversation context
type Generator interface {
	Generate(ctx context.Context, conv *conversation.Conversation) (string, error)
}

// Evaluator judges a candidate output against the original request
type Evaluator interface {
	Evaluate(ctx context.Context, request, output string) (verdict.Verdict, error)
}

// GeneratorFunc adapts a plain function to the Generator interface
type GeneratorFunc func(ctx context.Context, conv *conversation.Conversation) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, conv *conversation.Conversation) (string, error) {
	return f(ctx, conv)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface
type EvaluatorFunc func(ctx context.Context, request, output string) (verdict.Verdict, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, request, output string) (verdict.Verdict, error) {
	return f(ctx, request, output)
}

// Publisher abstracts event publishing for testing
type Publisher interface {
	Emit(e events.Event)
}

// Status is the controller's run state
type Status string

const (
	StatusRunning   Status = "running"
	StatusApproved  Status = "approved"
	StatusExhausted Status = "exhausted"
)

// Result is the terminal outcome of a run
type Result struct {
	// Output is the final generator output
	Output string

	// Status is the terminal status: approved or exhausted
	Status Status

	// AttemptsUsed is the exact count of completed generator invocations
	AttemptsUsed int

	// Feedback is the most recent rejection feedback. Empty when the
	// run was approved without any prior rejection.
	Feedback string
}

// Options configures a Controller
type Options struct {
	// MaxAttempts bounds generator invocations per run (must be >= 1)
	MaxAttempts int

	// RunID correlates emitted events (optional)
	RunID string

	// Publisher receives lifecycle events (optional)
	Publisher Publisher
}

// Controller drives the generate → evaluate → retry-or-finish cycle to
// a terminal outcome within a bounded number of attempts. A Controller
// is stateless across runs; each Run owns its own iteration state, so a
// single Controller may serve concurrent runs.
type Controller struct {
	maxAttempts int
	runID       string
	publisher   Publisher
}

// New creates a Controller, failing fast on invalid configuration
func New(opts Options) (*Controller, error) {
	if opts.MaxAttempts < 1 {
		return nil, &ConfigError{
			Field:   "max_attempts",
			Value:   opts.MaxAttempts,
			Message: "must be at least 1",
		}
	}

	return &Controller{
		maxAttempts: opts.MaxAttempts,
		runID:       opts.RunID,
		publisher:   opts.Publisher,
	}, nil
}

// iterationState is the mutable per-run record, owned exclusively by Run
type iterationState struct {
	attemptCount int
	lastOutput   string
	lastVerdict  verdict.Verdict
	lastFeedback string
	status       Status
}

// Run executes the review loop until approval, attempt exhaustion, or an
// upstream failure. Generator and evaluator calls strictly alternate and
// never overlap. Retry feedback is appended to the conversation as a
// permanent system turn so the full exchange stays auditable.
//
// Returns a Result for the approved and exhausted terminals. Input,
// configuration, and upstream failures are returned as errors; no
// partial state is left running.
func (c *Controller) Run(ctx context.Context, conv *conversation.Conversation, gen Generator, eval Evaluator) (*Result, error) {
	if conv == nil {
		return nil, &InputError{Reason: "conversation is nil"}
	}
	if err := conv.Validate(); err != nil {
		return nil, &InputError{Reason: err.Error()}
	}
	if gen == nil {
		return nil, &InputError{Reason: "generator is nil"}
	}
	if eval == nil {
		return nil, &InputError{Reason: "evaluator is nil"}
	}

	request := conv.Request()
	state := &iterationState{status: StatusRunning}

	c.emit(events.NewEvent(events.RunStarted, c.runID).WithPayload(map[string]any{
		"max_attempts": c.maxAttempts,
	}))

	for state.status == StatusRunning {
		if err := ctx.Err(); err != nil {
			c.emit(events.NewEvent(events.RunFailed, c.runID).WithError(err))
			return nil, err
		}

		// Carry rejection feedback into the next attempt as a system turn
		if state.attemptCount > 0 && state.lastFeedback != "" {
			conv.Append(conversation.RoleSystem, formatRetryDirective(state.lastFeedback))
		}

		attempt := state.attemptCount + 1
		c.emit(events.NewEvent(events.AttemptStarted, c.runID).WithAttempt(attempt))

		output, err := gen.Generate(ctx, conv)
		if err != nil {
			upErr := &UpstreamError{
				Stage:        StageGenerator,
				Attempt:      attempt,
				AttemptsUsed: state.attemptCount,
				Err:          err,
			}
			c.emit(events.NewEvent(events.RunFailed, c.runID).WithAttempt(attempt).WithError(upErr))
			return nil, upErr
		}

		state.attemptCount++
		state.lastOutput = output
		conv.Append(conversation.RoleAssistant, output)

		c.emit(events.NewEvent(events.AttemptGenerated, c.runID).WithAttempt(state.attemptCount).WithPayload(map[string]any{
			"output_chars": len(output),
		}))

		// Empty output is not special-cased here; rejecting it is the
		// evaluator's call.
		v, err := eval.Evaluate(ctx, request, output)
		if err != nil {
			upErr := &UpstreamError{
				Stage:        StageEvaluator,
				Attempt:      state.attemptCount,
				AttemptsUsed: state.attemptCount,
				Err:          err,
			}
			c.emit(events.NewEvent(events.RunFailed, c.runID).WithAttempt(state.attemptCount).WithError(upErr))
			return nil, upErr
		}

		state.lastVerdict = v
		c.emit(events.NewEvent(events.AttemptReviewed, c.runID).WithAttempt(state.attemptCount).WithPayload(map[string]any{
			"accepted": v.Accepted,
			"feedback": v.Feedback,
		}))

		// Decision policy, in fixed order: approval wins the tie on the
		// final allowed attempt.
		switch {
		case v.Accepted:
			state.status = StatusApproved
		case state.attemptCount >= c.maxAttempts:
			state.lastFeedback = v.Feedback
			state.status = StatusExhausted
		default:
			state.lastFeedback = v.Feedback
			c.emit(events.NewEvent(events.AttemptRetry, c.runID).WithAttempt(state.attemptCount).WithPayload(map[string]any{
				"feedback": v.Feedback,
			}))
		}
	}

	result := &Result{
		Output:       state.lastOutput,
		Status:       state.status,
		AttemptsUsed: state.attemptCount,
		Feedback:     state.lastFeedback,
	}

	switch state.status {
	case StatusApproved:
		c.emit(events.NewEvent(events.RunApproved, c.runID).WithPayload(map[string]any{
			"attempts": state.attemptCount,
		}))
	case StatusExhausted:
		c.emit(events.NewEvent(events.RunExhausted, c.runID).WithPayload(map[string]any{
			"attempts": state.attemptCount,
			"feedback": state.lastFeedback,
		}))
	}

	return result, nil
}

// formatRetryDirective wraps rejection feedback as a revision instruction
func formatRetryDirective(feedback string) string {
	return fmt.Sprintf("The previous draft was not approved. Reviewer feedback:\n%s\nRevise the draft to address this feedback.", feedback)
}

func (c *Controller) emit(e events.Event) {
	if c.publisher != nil {
		c.publisher.Emit(e)
	}
}
