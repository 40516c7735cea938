package provider

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ClaudeProvider implements Provider using the Claude CLI
type ClaudeProvider struct {
	command string
}

// NewClaude creates a Claude provider with the specified command path.
// If command is empty, defaults to "claude".
func NewClaude(command string) *ClaudeProvider {
	if command == "" {
		command = "claude"
	}
	return &ClaudeProvider{command: command}
}

// Invoke executes the Claude CLI with the given prompt.
// Non-interactive flags prevent hangs:
// --dangerously-skip-permissions: bypass interactive permission prompts
// --print: output to stdout instead of interactive mode
// -p: provide the prompt
func (p *ClaudeProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, p.command,
		"--dangerously-skip-permissions",
		"--print",
		"-p", prompt,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("claude invocation failed: %w: %s", err, firstLine(stderr.String()))
	}

	return stdout.String(), nil
}

// Name returns ProviderClaude
func (p *ClaudeProvider) Name() ProviderType {
	return ProviderClaude
}

// firstLine trims subprocess stderr down to a single line for error context
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
