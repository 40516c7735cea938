package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Multi fans a notification out to several notifiers.
// All notifiers are attempted even when earlier ones fail.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a fan-out notifier
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Notify delivers to every configured notifier and joins any errors
func (m *Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", notifier.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Name returns the joined names of the configured notifiers
func (m *Multi) Name() string {
	names := make([]string, len(m.notifiers))
	for i, n := range m.notifiers {
		names[i] = n.Name()
	}
	return "multi(" + strings.Join(names, ",") + ")"
}
