package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, ProviderClaude, cfg.Generator.Type)
	assert.Equal(t, ProviderClaude, cfg.Evaluator.Type)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, DefaultHistoryPath, cfg.History.Path)
	assert.True(t, cfg.Notify.Terminal)

	require.NoError(t, validateConfig(cfg))
}

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup (t.Chdir requires Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func TestLoad_MissingDefaultPathUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
}

func TestLoad_MissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redraft.yaml")
	content := `
max_attempts: 5
generator:
  type: codex
  command: /usr/local/bin/codex
evaluator:
  type: heuristic
  retry_on_malformed: 2
history:
  enabled: false
  path: ""
notify:
  terminal: false
  webhook_url: https://hooks.example.com/redraft
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, ProviderCodex, cfg.Generator.Type)
	assert.Equal(t, "/usr/local/bin/codex", cfg.Generator.Command)
	assert.Equal(t, ProviderHeuristic, cfg.Evaluator.Type)
	assert.Equal(t, 2, cfg.Evaluator.RetryOnMalformed)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "https://hooks.example.com/redraft", cfg.Notify.WebhookURL)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_attempts: ["), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("REDRAFT_MAX_ATTEMPTS", "7")
	t.Setenv("REDRAFT_GENERATOR_CMD", "/opt/claude")
	t.Setenv("REDRAFT_HISTORY_PATH", "/tmp/h.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.Equal(t, "/opt/claude", cfg.Generator.Command)
	assert.Equal(t, "/tmp/h.db", cfg.History.Path)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"heuristic generator", func(c *Config) { c.Generator.Type = ProviderHeuristic }},
		{"unknown generator", func(c *Config) { c.Generator.Type = "gpt9" }},
		{"unknown evaluator", func(c *Config) { c.Evaluator.Type = "gpt9" }},
		{"negative malformed retries", func(c *Config) { c.Evaluator.RetryOnMalformed = -1 }},
		{"history enabled without path", func(c *Config) { c.History.Path = "" }},
		{"relative webhook url", func(c *Config) { c.Notify.WebhookURL = "/hooks" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			require.Error(t, err)

			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestValidate_HeuristicEvaluatorOK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Evaluator.Type = ProviderHeuristic

	require.NoError(t, validateConfig(cfg))
}
