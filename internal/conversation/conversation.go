package conversation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Role identifies the origin of a conversation turn
type Role string

const (
	// RoleUser marks input originating from the requester
	RoleUser Role = "user"

	// RoleAssistant marks output produced by a generator
	RoleAssistant Role = "assistant"

	// RoleSystem marks directives injected by the controller (retry feedback)
	RoleSystem Role = "system"
)

// Turn is a single entry in a conversation
type Turn struct {
	Role    Role   `yaml:"role" json:"role"`
	Content string `yaml:"content" json:"content"`
}

// ValidationError describes why a conversation cannot start a run
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid conversation: %s", e.Reason)
}

// Conversation is an append-only ordered sequence of turns.
// Turns are never mutated in place; retry feedback and generated
// output are appended as new turns so the full exchange stays auditable.
type Conversation struct {
	turns []Turn
}

// New creates a conversation from the given turns
func New(turns ...Turn) *Conversation {
	c := &Conversation{}
	c.turns = append(c.turns, turns...)
	return c
}

// FromPrompt creates a single-turn conversation from a user prompt
func FromPrompt(prompt string) *Conversation {
	return New(Turn{Role: RoleUser, Content: prompt})
}

// Append adds a turn to the end of the conversation
func (c *Conversation) Append(role Role, content string) {
	c.turns = append(c.turns, Turn{Role: role, Content: content})
}

// Turns returns a copy of the turn sequence
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Request returns the content of the first user turn, which anchors
// the original request for evaluators. Empty if no user turn exists.
func (c *Conversation) Request() string {
	for _, t := range c.turns {
		if t.Role == RoleUser {
			return t.Content
		}
	}
	return ""
}

// Validate checks that the conversation can seed a generation run.
// It must be non-empty and contain at least one user turn.
func (c *Conversation) Validate() error {
	if c == nil || len(c.turns) == 0 {
		return &ValidationError{Reason: "conversation has no turns"}
	}

	hasUser := false
	for _, t := range c.turns {
		if t.Role == RoleUser {
			hasUser = true
			break
		}
	}
	if !hasUser {
		return &ValidationError{Reason: "conversation has no user turn"}
	}

	for i, t := range c.turns {
		switch t.Role {
		case RoleUser, RoleAssistant, RoleSystem:
		default:
			return &ValidationError{Reason: fmt.Sprintf("turn %d has unknown role %q", i, t.Role)}
		}
	}

	return nil
}

// Parse decodes a YAML turn list into a conversation.
// Expected format:
//
//	- role: user
//	  content: Draft a summary of ...
func Parse(data []byte) (*Conversation, error) {
	var turns []Turn
	if err := yaml.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("failed to parse conversation: %w", err)
	}
	return New(turns...), nil
}

// ParseFile reads and decodes a conversation YAML file
func ParseFile(path string) (*Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation file: %w", err)
	}
	return Parse(data)
}
