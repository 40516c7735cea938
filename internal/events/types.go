package events

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single occurrence in the run lifecycle
type Event struct {
	// Time is when the event occurred (set by bus on emit)
	Time time.Time `json:"time"`

	// Type identifies what happened
	Type EventType `json:"type"`

	// Run is the run ID this event relates to
	Run string `json:"run,omitempty"`

	// Attempt is the attempt number within the run (nil if not attempt-related)
	Attempt *int `json:"attempt,omitempty"`

	// Payload contains event-specific data (type varies by event)
	Payload any `json:"payload,omitempty"`

	// Error contains error message if this is a failure event
	Error string `json:"error,omitempty"`
}

// EventType is a string constant identifying the event category
type EventType string

// Run lifecycle events
const (
	RunStarted   EventType = "run.started"
	RunApproved  EventType = "run.approved"
	RunExhausted EventType = "run.exhausted"
	RunFailed    EventType = "run.failed"
)

// Attempt lifecycle events
const (
	AttemptStarted   EventType = "attempt.started"
	AttemptGenerated EventType = "attempt.generated"
	AttemptReviewed  EventType = "attempt.reviewed"
	AttemptRetry     EventType = "attempt.retry"
)

// Evaluator output events
const (
	VerdictMalformed EventType = "verdict.malformed"
)

// Notification events
const (
	NotifyFailed EventType = "notify.failed"
)

// NewEvent creates an event with the given type and run ID
func NewEvent(eventType EventType, run string) Event {
	return Event{
		Type: eventType,
		Run:  run,
	}
}

// WithAttempt returns a copy of the event with the attempt number set
func (e Event) WithAttempt(attempt int) Event {
	e.Attempt = &attempt
	return e
}

// WithPayload returns a copy of the event with the payload set
func (e Event) WithPayload(payload any) Event {
	e.Payload = payload
	return e
}

// WithError returns a copy of the event with the error message set
func (e Event) WithError(err error) Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// IsFailure returns true if this is a failure event type
func (e Event) IsFailure() bool {
	return strings.HasSuffix(string(e.Type), ".failed")
}

// String returns a human-readable representation of the event
func (e Event) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", e.Type))

	if e.Run != "" {
		parts = append(parts, e.Run)
	}

	if e.Attempt != nil {
		parts = append(parts, fmt.Sprintf("attempt=#%d", *e.Attempt))
	}

	return strings.Join(parts, " ")
}
