package provider

import "context"

// ProviderType identifies which LLM provider to use
type ProviderType string

const (
	// ProviderClaude uses the Claude CLI (default)
	ProviderClaude ProviderType = "claude"

	// ProviderCodex uses the OpenAI Codex CLI
	ProviderCodex ProviderType = "codex"

	// ProviderHeuristic is the built-in offline evaluator. It is valid
	// only for the evaluator role.
	ProviderHeuristic ProviderType = "heuristic"
)

// Provider defines the interface for CLI-based LLM providers.
// Invoke runs the provider once with a prompt and returns its text
// output. The call blocks until the subprocess exits or ctx is done;
// deadlines are the caller's responsibility.
type Provider interface {
	Invoke(ctx context.Context, prompt string) (string, error)

	// Name returns the provider type identifier
	Name() ProviderType
}

// Config holds provider configuration
type Config struct {
	// Type specifies which provider to use (defaults to "claude" if empty)
	Type ProviderType

	// Command is the path to the provider CLI executable.
	// If empty, uses the default command name ("claude" or "codex").
	Command string
}
