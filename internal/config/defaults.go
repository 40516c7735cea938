package config

const (
	DefaultPath             = ".redraft.yaml"
	DefaultMaxAttempts      = 3
	DefaultClaudeCommand    = "claude"
	DefaultCodexCommand     = "codex"
	DefaultRetryOnMalformed = 1
	DefaultHistoryPath      = ".redraft/history.db"
)

// DefaultConfig returns a Config with all default values applied
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: DefaultMaxAttempts,
		Generator: GeneratorConfig{
			Type:    ProviderClaude,
			Command: DefaultClaudeCommand,
		},
		Evaluator: EvaluatorConfig{
			Type:             ProviderClaude,
			Command:          DefaultClaudeCommand,
			RetryOnMalformed: DefaultRetryOnMalformed,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    DefaultHistoryPath,
		},
		Notify: NotifyConfig{
			Terminal: true,
		},
	}
}
