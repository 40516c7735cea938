package tui

import (
	"fmt"
	"strings"
	"time"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.Done || m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderAttempt())
	b.WriteString("\n")

	if len(m.PastFeedback) > 0 {
		b.WriteString(m.renderFeedback())
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with timer and run ID
func (m *Model) renderHeader() string {
	elapsed := time.Since(m.StartTime).Round(time.Second)
	timer := fmt.Sprintf("[%s]", formatDuration(elapsed))
	runID := fmt.Sprintf("run %s", m.RunID)

	return fmt.Sprintf("%s  %s  %s",
		m.Styles.Title.Render("Redraft"),
		m.Styles.Timer.Render(timer),
		m.Styles.RunID.Render(runID),
	)
}

// renderAttempt renders the current attempt with its progress bar
func (m *Model) renderAttempt() string {
	if m.Attempt.Number == 0 {
		return "  Waiting for first attempt...\n"
	}

	var b strings.Builder

	icon := m.Styles.AttemptActive.Render(IconActive)
	switch {
	case m.Attempt.Reviewed && m.Attempt.Accepted:
		icon = m.Styles.AttemptAccepted.Render(IconAccepted)
	case m.Attempt.Reviewed:
		icon = m.Styles.AttemptRejected.Render(IconRejected)
	}

	progress := m.renderProgressBar(m.Attempt.Number, m.MaxAttempts, 20)
	count := fmt.Sprintf("attempt %d/%d", m.Attempt.Number, m.MaxAttempts)

	b.WriteString(fmt.Sprintf("  %s %s %s\n", icon, progress, count))

	phase := m.Attempt.Phase
	if m.FinalStatus != "" {
		phase = m.FinalStatus
	}
	b.WriteString(fmt.Sprintf("    %s %s\n",
		m.Styles.PhaseIcon.Render(m.Attempt.PhaseIcon),
		m.Styles.PhaseText.Render(phase),
	))

	return b.String()
}

// renderProgressBar renders a fixed-width bar of filled/empty cells
func (m *Model) renderProgressBar(current, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}

	bar := m.Styles.ProgressFilled.Render(strings.Repeat("█", filled)) +
		m.Styles.ProgressEmpty.Render(strings.Repeat("░", width-filled))
	return "[" + bar + "]"
}

// renderFeedback renders recent rejection feedback, newest last
func (m *Model) renderFeedback() string {
	var b strings.Builder

	b.WriteString("  " + m.Styles.FeedbackTitle.Render("Reviewer feedback") + "\n")
	for _, fb := range m.PastFeedback {
		line := fb
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i] + " …"
		}
		b.WriteString("    " + m.Styles.FeedbackLine.Render(line) + "\n")
	}

	return b.String()
}

// renderFooter renders the key hints
func (m *Model) renderFooter() string {
	return m.Styles.Footer.Render(
		m.Styles.FooterKey.Render("q") + " quit",
	)
}

// formatDuration renders mm:ss or hh:mm:ss for longer runs
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	mi := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, mi, s)
	}
	return fmt.Sprintf("%02d:%02d", mi, s)
}
