package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoleProviderType identifies which provider backs a loop role
type RoleProviderType string

const (
	ProviderClaude    RoleProviderType = "claude"
	ProviderCodex     RoleProviderType = "codex"
	ProviderHeuristic RoleProviderType = "heuristic"
)

// GeneratorConfig selects and configures the generator provider
type GeneratorConfig struct {
	// Type is the provider type: "claude" (default) or "codex"
	Type RoleProviderType `yaml:"type"`

	// Command overrides the default CLI binary path
	Command string `yaml:"command,omitempty"`
}

// EvaluatorConfig selects and configures the evaluator provider
type EvaluatorConfig struct {
	// Type is the provider type: "claude" (default), "codex", or
	// "heuristic" (offline, deterministic)
	Type RoleProviderType `yaml:"type"`

	// Command overrides the default CLI binary path
	Command string `yaml:"command,omitempty"`

	// Criteria are the review criteria given to model-backed evaluators
	Criteria []string `yaml:"criteria,omitempty"`

	// RetryOnMalformed is the re-request budget for unparseable verdicts
	RetryOnMalformed int `yaml:"retry_on_malformed"`
}

// HistoryConfig controls run persistence
type HistoryConfig struct {
	// Enabled controls whether runs are recorded. Default: true.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database location
	Path string `yaml:"path"`
}

// NotifyConfig controls run-outcome notifications
type NotifyConfig struct {
	// Terminal prints outcome notices to stderr. Default: true.
	Terminal bool `yaml:"terminal"`

	// WebhookURL, when set, receives outcome notifications as JSON POSTs
	WebhookURL string `yaml:"webhook_url,omitempty"`
}

// Config holds all configuration for redraft.
// It is immutable after creation via Load().
type Config struct {
	// MaxAttempts bounds generator invocations per run
	MaxAttempts int `yaml:"max_attempts"`

	// Generator selects the drafting provider
	Generator GeneratorConfig `yaml:"generator"`

	// Evaluator selects the reviewing provider
	Evaluator EvaluatorConfig `yaml:"evaluator"`

	// History controls run persistence
	History HistoryConfig `yaml:"history"`

	// Notify controls run-outcome notifications
	Notify NotifyConfig `yaml:"notify"`
}

// Load reads configuration from the given path, applying defaults, env
// overrides, and validation. An empty path falls back to DefaultPath;
// a missing file at the default path yields pure defaults, while a
// missing explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
