package provider

import (
	"context"
	"strings"

	"github.com/redraft-dev/redraft/internal/conversation"
)

// Generator adapts a Provider to the controller's generator contract
type Generator struct {
	provider Provider
}

// NewGenerator wraps a provider for use as a loop generator
func NewGenerator(p Provider) *Generator {
	return &Generator{provider: p}
}

// Generate renders the conversation into a prompt, invokes the
// provider, and returns the trimmed output. Provider failures are
// returned unchanged; the controller surfaces them as upstream errors.
func (g *Generator) Generate(ctx context.Context, conv *conversation.Conversation) (string, error) {
	prompt := BuildGeneratorPrompt(conv)

	output, err := g.provider.Invoke(ctx, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(output), nil
}
