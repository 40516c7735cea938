package history

import (
	"github.com/redraft-dev/redraft/internal/events"
)

// RecorderConfig configures the event-driven attempt recorder
type RecorderConfig struct {
	// DB is the open history database
	DB *DB

	// OnError is called when persistence fails (optional)
	OnError func(error)
}

// RecorderHandler returns a handler that persists attempt outcomes as
// they are reviewed. Run rows are created and finished explicitly by
// the caller; this handler only fills in the per-attempt detail.
func RecorderHandler(cfg RecorderConfig) events.Handler {
	fail := func(err error) {
		if cfg.OnError != nil {
			cfg.OnError(err)
		}
	}

	return func(e events.Event) {
		if e.Type != events.AttemptReviewed || e.Attempt == nil {
			return
		}

		accepted := false
		feedback := ""
		if payload, ok := e.Payload.(map[string]any); ok {
			if a, ok := payload["accepted"].(bool); ok {
				accepted = a
			}
			if f, ok := payload["feedback"].(string); ok {
				feedback = f
			}
		}

		err := cfg.DB.RecordAttempt(&Attempt{
			RunID:    e.Run,
			Number:   *e.Attempt,
			Accepted: accepted,
			Feedback: feedback,
		})
		if err != nil {
			fail(err)
		}
	}
}
