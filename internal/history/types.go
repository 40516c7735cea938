package history

import "time"

// Run statuses as persisted
const (
	RunStatusRunning   = "running"
	RunStatusApproved  = "approved"
	RunStatusExhausted = "exhausted"
	RunStatusFailed    = "failed"
)

// Run is a persisted review loop invocation
type Run struct {
	ID           string
	Request      string
	MaxAttempts  int
	Status       string
	AttemptsUsed int
	Output       string
	Feedback     string
	Error        string
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// Attempt is a persisted generator invocation within a run
type Attempt struct {
	RunID     string
	Number    int
	Accepted  bool
	Feedback  string
	CreatedAt time.Time
}
