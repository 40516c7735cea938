package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config) error {
	var errs []error

	if cfg.MaxAttempts < 1 {
		errs = append(errs, &ValidationError{
			Field:   "max_attempts",
			Value:   cfg.MaxAttempts,
			Message: "must be at least 1",
		})
	}

	switch cfg.Generator.Type {
	case ProviderClaude, ProviderCodex:
	case ProviderHeuristic:
		errs = append(errs, &ValidationError{
			Field:   "generator.type",
			Value:   cfg.Generator.Type,
			Message: "heuristic is only valid for the evaluator",
		})
	default:
		errs = append(errs, &ValidationError{
			Field:   "generator.type",
			Value:   cfg.Generator.Type,
			Message: "must be 'claude' or 'codex'",
		})
	}

	switch cfg.Evaluator.Type {
	case ProviderClaude, ProviderCodex, ProviderHeuristic:
	default:
		errs = append(errs, &ValidationError{
			Field:   "evaluator.type",
			Value:   cfg.Evaluator.Type,
			Message: "must be 'claude', 'codex', or 'heuristic'",
		})
	}

	if cfg.Evaluator.RetryOnMalformed < 0 {
		errs = append(errs, &ValidationError{
			Field:   "evaluator.retry_on_malformed",
			Value:   cfg.Evaluator.RetryOnMalformed,
			Message: "must be non-negative",
		})
	}

	if cfg.History.Enabled && cfg.History.Path == "" {
		errs = append(errs, &ValidationError{
			Field:   "history.path",
			Value:   cfg.History.Path,
			Message: "must not be empty when history is enabled",
		})
	}

	if cfg.Notify.WebhookURL != "" {
		if u, err := url.Parse(cfg.Notify.WebhookURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, &ValidationError{
				Field:   "notify.webhook_url",
				Value:   cfg.Notify.WebhookURL,
				Message: "must be an absolute URL",
			})
		}
	}

	return errors.Join(errs...)
}
