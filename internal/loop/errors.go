package loop

import "fmt"

// InputError indicates the seed conversation cannot start a run.
// No collaborator calls are made when this is returned.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// ConfigError indicates invalid controller configuration.
// Detected before any generator or evaluator call.
type ConfigError struct {
	Field   string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("loop.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// Stage identifies which collaborator a failure originated in
type Stage string

const (
	StageGenerator Stage = "generator"
	StageEvaluator Stage = "evaluator"
)

// UpstreamError indicates a generator or evaluator failure. The
// controller never retries these; it aborts the run and surfaces the
// stage and attempt so the caller can decide whether to rerun.
type UpstreamError struct {
	// Stage is the collaborator that failed
	Stage Stage

	// Attempt is the 1-based attempt during which the failure occurred
	Attempt int

	// AttemptsUsed counts attempts that completed before the failure.
	// A generator failure on attempt k reports k-1; an evaluator
	// failure reports k since the generation itself completed.
	AttemptsUsed int

	// Err is the underlying collaborator error
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed on attempt %d: %v", e.Stage, e.Attempt, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
