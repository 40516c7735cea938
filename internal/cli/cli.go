package cli

import (
	"github.com/spf13/cobra"
)

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Runtime state
	verbose bool

	// Version information
	version string
	commit  string
	date    string
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()

	app.rootCmd.AddCommand(NewRunCmd(app))
	app.rootCmd.AddCommand(NewHistoryCmd(app))
	app.rootCmd.AddCommand(NewVersionCmd(app))

	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version strings for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.version = version
	a.commit = commit
	a.date = date
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "redraft",
		Short: "Reviewed drafting loop for LLM output",
		Long: `Redraft runs a generate-review loop: a generator drafts a response,
an evaluator reviews it, and rejected drafts are revised against the
reviewer's feedback until approval or the attempt budget runs out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")
}
