package notify

import "context"

// Severity indicates how much attention an outcome needs
type Severity string

const (
	SeverityInfo     Severity = "info"     // FYI, no action needed
	SeverityWarning  Severity = "warning"  // May need attention
	SeverityCritical Severity = "critical" // Requires immediate action
)

// Notification describes a run outcome worth telling the user about
type Notification struct {
	Severity Severity          // How urgent is this?
	Run      string            // Which run is affected
	Title    string            // Short summary (one line)
	Message  string            // Detailed explanation
	Context  map[string]string // Additional context (attempt counts, feedback, etc.)
}

// Notifier is the interface for delivering notifications
type Notifier interface {
	// Notify sends a notification to the user.
	// Implementations should respect context cancellation.
	Notify(ctx context.Context, n Notification) error

	// Name returns the notifier type for logging
	Name() string
}
