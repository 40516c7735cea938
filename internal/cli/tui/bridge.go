package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/redraft-dev/redraft/internal/events"
)

// Bridge forwards loop events to a running bubbletea program
type Bridge struct {
	program *tea.Program
}

// NewBridge creates a bridge for the given program
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{program: program}
}

// Handler returns an events.Handler that translates events into TUI messages
func (b *Bridge) Handler() events.Handler {
	return func(e events.Event) {
		msg := toMsg(e)
		if msg != nil {
			b.program.Send(msg)
		}
	}
}

// SendDone tells the TUI the run has completed and it should exit
func (b *Bridge) SendDone() {
	b.program.Send(DoneMsg{})
}

// SendQuit tells the TUI to exit immediately
func (b *Bridge) SendQuit() {
	b.program.Send(QuitMsg{})
}

// toMsg maps a loop event to its TUI message, or nil if the TUI ignores it
func toMsg(e events.Event) tea.Msg {
	attempt := 0
	if e.Attempt != nil {
		attempt = *e.Attempt
	}

	switch e.Type {
	case events.AttemptStarted:
		return AttemptStartedMsg{Number: attempt}

	case events.AttemptGenerated:
		return AttemptPhaseMsg{
			Number:    attempt,
			Phase:     "awaiting review",
			PhaseIcon: IconReview,
		}

	case events.AttemptReviewed:
		msg := AttemptReviewedMsg{Number: attempt}
		if payload, ok := e.Payload.(map[string]any); ok {
			if accepted, ok := payload["accepted"].(bool); ok {
				msg.Accepted = accepted
			}
			if feedback, ok := payload["feedback"].(string); ok {
				msg.Feedback = feedback
			}
		}
		return msg

	case events.RunApproved:
		return RunFinishedMsg{Status: "approved"}

	case events.RunExhausted:
		return RunFinishedMsg{Status: "exhausted"}

	case events.RunFailed:
		return RunFinishedMsg{Status: "failed", Error: e.Error}
	}

	return nil
}
