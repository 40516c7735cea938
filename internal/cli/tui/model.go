package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// AttemptState tracks the most recent attempt shown in the TUI
type AttemptState struct {
	Number    int
	Phase     string
	PhaseIcon string
	Accepted  bool
	Reviewed  bool
	Feedback  string
}

// Model is the bubbletea model for the TUI
type Model struct {
	// Configuration
	RunID       string
	MaxAttempts int
	Styles      Styles

	// State
	Attempt       AttemptState
	PastFeedback  []string
	FeedbackLimit int
	StartTime     time.Time
	FinalStatus   string
	FinalError    string
	Width         int
	Height        int

	// Control
	Quitting bool
	Done     bool
}

// NewModel creates a new TUI model
func NewModel(runID string, maxAttempts int) *Model {
	return &Model{
		RunID:         runID,
		MaxAttempts:   maxAttempts,
		Styles:        DefaultStyles(),
		StartTime:     time.Now(),
		FeedbackLimit: 5,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// TickMsg is sent every second to update the timer
type TickMsg time.Time

// tickCmd returns a command that sends TickMsg every second
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// DoneMsg signals the TUI should exit
type DoneMsg struct{}

// QuitMsg signals the user requested quit (q or Ctrl+C)
type QuitMsg struct{}

// AttemptStartedMsg indicates a new attempt has begun
type AttemptStartedMsg struct {
	Number int
}

// AttemptPhaseMsg indicates a phase change within the current attempt
type AttemptPhaseMsg struct {
	Number    int
	Phase     string
	PhaseIcon string
}

// AttemptReviewedMsg carries the verdict for an attempt
type AttemptReviewedMsg struct {
	Number   int
	Accepted bool
	Feedback string
}

// RunFinishedMsg indicates the run reached a terminal status
type RunFinishedMsg struct {
	Status string
	Error  string
}
