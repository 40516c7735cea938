package notify

import "github.com/redraft-dev/redraft/internal/config"

// FromConfig builds a notifier from the notify configuration.
// Returns nil when nothing is enabled.
func FromConfig(cfg config.NotifyConfig) Notifier {
	var notifiers []Notifier

	if cfg.Terminal {
		notifiers = append(notifiers, NewTerminal())
	}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, NewWebhook(cfg.WebhookURL))
	}

	switch len(notifiers) {
	case 0:
		return nil
	case 1:
		return notifiers[0]
	default:
		return NewMulti(notifiers...)
	}
}
