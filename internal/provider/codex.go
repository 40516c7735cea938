package provider

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// CodexProvider implements Provider using the OpenAI Codex CLI
type CodexProvider struct {
	command string
}

// NewCodex creates a Codex provider with the specified command path.
// If command is empty, defaults to "codex".
func NewCodex(command string) *CodexProvider {
	if command == "" {
		command = "codex"
	}
	return &CodexProvider{command: command}
}

// Invoke executes the Codex CLI non-interactively with the given prompt
func (p *CodexProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, p.command, "exec", prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("codex invocation failed: %w: %s", err, firstLine(stderr.String()))
	}

	return stdout.String(), nil
}

// Name returns ProviderCodex
func (p *CodexProvider) Name() ProviderType {
	return ProviderCodex
}
