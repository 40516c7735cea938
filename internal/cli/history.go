package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redraft-dev/redraft/internal/config"
	"github.com/redraft-dev/redraft/internal/history"
)

// HistoryOptions holds flags for the history command
type HistoryOptions struct {
	Limit      int    // Max runs to list
	ConfigPath string // Config file path
}

// NewHistoryCmd creates the history command
func NewHistoryCmd(app *App) *cobra.Command {
	opts := HistoryOptions{Limit: 20}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs",
		Long: `History lists recent runs from the local run database, newest first.
With a run ID argument, shows that run's attempts in detail.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				os.Exit(2)
			}

			db, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer db.Close()

			if len(args) > 0 {
				return showRun(cmd, db, args[0])
			}
			return listRuns(cmd, db, opts.Limit)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Max runs to list")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file path")

	return cmd
}

func listRuns(cmd *cobra.Command, db *history.DB, limit int) error {
	runs, err := db.ListRuns(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintln(cmd.OutOrStdout(), FormatRunLine(run))
	}
	return nil
}

func showRun(cmd *cobra.Command, db *history.DB, id string) error {
	run, err := db.GetRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s\n", run.ID)
	fmt.Fprintf(out, "  Status:    %s %s\n", GetStatusSymbol(run.Status), run.Status)
	fmt.Fprintf(out, "  Attempts:  %d/%d\n", run.AttemptsUsed, run.MaxAttempts)
	fmt.Fprintf(out, "  Started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.CompletedAt != nil {
		fmt.Fprintf(out, "  Completed: %s\n", run.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(out, "  Request:   %s\n", firstLineOf(run.Request))
	if run.Error != "" {
		fmt.Fprintf(out, "  Error:     %s\n", run.Error)
	}

	attempts, err := db.ListAttempts(run.ID)
	if err != nil {
		return err
	}
	if len(attempts) > 0 {
		fmt.Fprintln(out)
		for _, a := range attempts {
			fmt.Fprintln(out, FormatAttemptLine(a))
		}
	}

	return nil
}
