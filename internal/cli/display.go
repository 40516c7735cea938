package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/redraft-dev/redraft/internal/history"
	"github.com/redraft-dev/redraft/internal/loop"
)

// StatusSymbol returns the appropriate symbol for a run status
type StatusSymbol string

const (
	SymbolApproved  StatusSymbol = "✓"
	SymbolExhausted StatusSymbol = "✗"
	SymbolRunning   StatusSymbol = "●"
	SymbolFailed    StatusSymbol = "!"
)

// GetStatusSymbol returns the symbol for a persisted run status
func GetStatusSymbol(status string) StatusSymbol {
	switch status {
	case history.RunStatusApproved:
		return SymbolApproved
	case history.RunStatusExhausted:
		return SymbolExhausted
	case history.RunStatusRunning:
		return SymbolRunning
	case history.RunStatusFailed:
		return SymbolFailed
	default:
		return SymbolRunning
	}
}

// PrintResult writes the final draft and a run summary
func PrintResult(w io.Writer, result *loop.Result) {
	fmt.Fprintln(w, result.Output)

	fmt.Fprintf(w, "\nRun complete:\n")
	fmt.Fprintf(w, "  Status:    %s %s\n", GetStatusSymbol(string(result.Status)), result.Status)
	fmt.Fprintf(w, "  Attempts:  %d\n", result.AttemptsUsed)
	if result.Status == loop.StatusExhausted && result.Feedback != "" {
		fmt.Fprintf(w, "  Last feedback:\n%s\n", indent(result.Feedback, "    "))
	}
}

// FormatRunLine formats a single run for the history listing
func FormatRunLine(run *history.Run) string {
	request := firstLineOf(run.Request)
	if len(request) > 60 {
		request = request[:57] + "..."
	}

	return fmt.Sprintf("%s %s  %-9s  %d/%d  %s  %s",
		GetStatusSymbol(run.Status),
		run.ID[:8],
		run.Status,
		run.AttemptsUsed,
		run.MaxAttempts,
		run.StartedAt.Format("2006-01-02 15:04"),
		request,
	)
}

// FormatAttemptLine formats a single attempt for the run detail view
func FormatAttemptLine(a *history.Attempt) string {
	symbol := SymbolExhausted
	outcome := "rejected"
	if a.Accepted {
		symbol = SymbolApproved
		outcome = "accepted"
	}

	line := fmt.Sprintf("  %s #%d  %s", symbol, a.Number, outcome)
	if a.Feedback != "" {
		line += "\n" + indent(a.Feedback, "       ")
	}
	return line
}

func firstLineOf(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
