package tui

import tea "github.com/charmbracelet/bubbletea"

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TickMsg:
		// Continue ticking for timer updates
		return m, tickCmd()

	case DoneMsg:
		m.Done = true
		return m, tea.Quit

	case QuitMsg:
		m.Quitting = true
		return m, tea.Quit

	case AttemptStartedMsg:
		m.Attempt = AttemptState{
			Number:    msg.Number,
			Phase:     "generating draft",
			PhaseIcon: IconGenerate,
		}

	case AttemptPhaseMsg:
		if msg.Number == m.Attempt.Number {
			m.Attempt.Phase = msg.Phase
			m.Attempt.PhaseIcon = msg.PhaseIcon
		}

	case AttemptReviewedMsg:
		m.Attempt.Reviewed = true
		m.Attempt.Accepted = msg.Accepted
		if !msg.Accepted && msg.Feedback != "" {
			m.PastFeedback = append(m.PastFeedback, msg.Feedback)
			if len(m.PastFeedback) > m.FeedbackLimit {
				m.PastFeedback = m.PastFeedback[len(m.PastFeedback)-m.FeedbackLimit:]
			}
		}

	case RunFinishedMsg:
		m.FinalStatus = msg.Status
		m.FinalError = msg.Error
	}

	return m, nil
}
