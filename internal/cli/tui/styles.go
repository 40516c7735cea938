package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all lipgloss styles for the TUI
type Styles struct {
	// Header styling
	Title lipgloss.Style
	Timer lipgloss.Style
	RunID lipgloss.Style

	// Attempt styling
	AttemptActive   lipgloss.Style
	AttemptAccepted lipgloss.Style
	AttemptRejected lipgloss.Style

	// Progress bar colors
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style

	// Phase icons and text
	PhaseIcon lipgloss.Style
	PhaseText lipgloss.Style

	// Feedback area styling
	FeedbackTitle lipgloss.Style
	FeedbackLine  lipgloss.Style

	// Footer styling
	Footer    lipgloss.Style
	FooterKey lipgloss.Style
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Timer: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		RunID: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		AttemptActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		AttemptAccepted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		AttemptRejected: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		ProgressFilled: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		ProgressEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		PhaseIcon: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		PhaseText: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),

		FeedbackTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
		FeedbackLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		FooterKey: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}

// Icons used in the TUI
const (
	IconActive   = "●"
	IconAccepted = "✓"
	IconRejected = "✗"
	IconGenerate = "✍"
	IconReview   = "🔍"
	IconWaiting  = "⏳"
)
