package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Terminal writes notifications to a writer with severity indicators
type Terminal struct {
	w  io.Writer
	mu sync.Mutex // Protects concurrent writes
}

// NewTerminal creates a terminal notifier writing to stderr
func NewTerminal() *Terminal {
	return &Terminal{w: os.Stderr}
}

// NewTerminalWithWriter creates a terminal notifier with a custom writer
func NewTerminalWithWriter(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Notify writes the notification to the configured writer
func (t *Terminal) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prefix := ""
	switch n.Severity {
	case SeverityCritical:
		prefix = "🚨 "
	case SeverityWarning:
		prefix = "⚠️  "
	default:
		prefix = "ℹ️  "
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.w, "\n%s[%s] %s\n", prefix, n.Severity, n.Title)
	if n.Run != "" {
		fmt.Fprintf(t.w, "   Run: %s\n", n.Run)
	}
	fmt.Fprintf(t.w, "   %s\n", n.Message)

	for k, v := range n.Context {
		fmt.Fprintf(t.w, "   %s: %s\n", k, v)
	}

	return nil
}

// Name returns "terminal"
func (t *Terminal) Name() string {
	return "terminal"
}
