package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/redraft-dev/redraft/internal/cli/tui"
	"github.com/redraft-dev/redraft/internal/config"
	"github.com/redraft-dev/redraft/internal/conversation"
	"github.com/redraft-dev/redraft/internal/events"
	"github.com/redraft-dev/redraft/internal/history"
	"github.com/redraft-dev/redraft/internal/loop"
	"github.com/redraft-dev/redraft/internal/notify"
	"github.com/redraft-dev/redraft/internal/provider"
)

// ErrExhausted is returned when the run ends without approval. The main
// entrypoint maps it to exit code 1.
var ErrExhausted = errors.New("attempt budget exhausted without approval")

// RunOptions holds flags for the run command
type RunOptions struct {
	Prompt      string // Request text (positional arg)
	File        string // Conversation YAML file (alternative to Prompt)
	MaxAttempts int    // Generator invocation budget (0 = use config)
	Generator   string // Generator provider override (claude, codex)
	Evaluator   string // Evaluator provider override (claude, codex, heuristic)
	ConfigPath  string // Config file path (default: .redraft.yaml)
	NoTUI       bool   // Disable TUI even when stdout is a TTY
	JSON        bool   // Force JSON event output
	NoHistory   bool   // Skip run persistence
}

// Validate checks RunOptions for validity
func (opts RunOptions) Validate() error {
	if opts.Prompt == "" && opts.File == "" {
		return fmt.Errorf("a prompt argument or --file is required")
	}
	if opts.Prompt != "" && opts.File != "" {
		return fmt.Errorf("prompt argument and --file are mutually exclusive")
	}
	if opts.MaxAttempts < 0 {
		return fmt.Errorf("max-attempts must not be negative, got %d", opts.MaxAttempts)
	}
	return nil
}

// NewRunCmd creates the run command
func NewRunCmd(app *App) *cobra.Command {
	opts := RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [prompt]",
		Short: "Run the review loop for a request",
		Long: `Run drives a request through the generate-review loop until the
evaluator approves a draft or the attempt budget is exhausted.

The request is given as a prompt argument, or as a conversation file
(--file) holding a YAML list of role/content turns.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Prompt = args[0]
			}

			if err := opts.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				os.Exit(2)
			}

			return app.RunLoop(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Conversation YAML file")
	cmd.Flags().IntVarP(&opts.MaxAttempts, "max-attempts", "m", 0, "Max generator attempts (default from config)")
	cmd.Flags().StringVar(&opts.Generator, "generator", "", "Generator provider (claude, codex)")
	cmd.Flags().StringVar(&opts.Evaluator, "evaluator", "", "Evaluator provider (claude, codex, heuristic)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file path")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Disable interactive TUI (use log output)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit events as JSON lines on stdout")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Skip recording the run to history")

	return cmd
}

// RunLoop wires up the controller and executes a single run
func (a *App) RunLoop(ctx context.Context, opts RunOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	applyRunOverrides(cfg, opts)

	conv, err := buildConversation(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	runID := uuid.New().String()
	bus := events.NewBus()

	jsonMode := events.IsJSONMode(opts.JSON)
	useTUI := !opts.NoTUI && !jsonMode && term.IsTerminal(int(os.Stdout.Fd()))

	switch {
	case jsonMode:
		bus.Subscribe(events.JSONEmitterHandler(events.NewJSONEmitter(os.Stdout)))
	case !useTUI:
		bus.Subscribe(events.LogHandler(events.LogConfig{IncludePayload: a.verbose}))
	}

	// Run TUI in background when stdout is interactive
	var tuiBridge *tui.Bridge
	var tuiDone chan struct{}
	if useTUI {
		program := tea.NewProgram(tui.NewModel(runID, cfg.MaxAttempts))
		tuiBridge = tui.NewBridge(program)
		bus.Subscribe(tuiBridge.Handler())

		tuiDone = make(chan struct{})
		go func() {
			defer close(tuiDone)
			if _, err := program.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			}
		}()
	}

	// Open history and create the run row before the loop starts
	var db *history.DB
	if cfg.History.Enabled && !opts.NoHistory {
		db, err = history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer db.Close()

		if err := db.CreateRun(&history.Run{
			ID:          runID,
			Request:     conv.Request(),
			MaxAttempts: cfg.MaxAttempts,
		}); err != nil {
			return err
		}

		bus.Subscribe(history.RecorderHandler(history.RecorderConfig{
			DB: db,
			OnError: func(err error) {
				fmt.Fprintf(os.Stderr, "Warning: failed to record attempt: %v\n", err)
			},
		}))
	}

	gen, eval, err := buildRoles(cfg, runID, bus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctrl, err := loop.New(loop.Options{
		MaxAttempts: cfg.MaxAttempts,
		RunID:       runID,
		Publisher:   bus,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	result, runErr := ctrl.Run(ctx, conv, gen, eval)

	if db != nil {
		if err := finishHistory(db, runID, result, runErr); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to finish run record: %v\n", err)
		}
	}

	if tuiBridge != nil {
		tuiBridge.SendDone()
		<-tuiDone
	}

	sendNotification(ctx, cfg, bus, runID, result, runErr)

	if runErr != nil {
		return runErr
	}

	if !jsonMode {
		PrintResult(os.Stdout, result)
	}

	if result.Status == loop.StatusExhausted {
		return fmt.Errorf("%w (attempts: %d)", ErrExhausted, result.AttemptsUsed)
	}
	return nil
}

// applyRunOverrides merges run command flags over the loaded config
func applyRunOverrides(cfg *config.Config, opts RunOptions) {
	if opts.MaxAttempts > 0 {
		cfg.MaxAttempts = opts.MaxAttempts
	}
	if opts.Generator != "" {
		cfg.Generator.Type = config.RoleProviderType(opts.Generator)
		cfg.Generator.Command = ""
	}
	if opts.Evaluator != "" {
		cfg.Evaluator.Type = config.RoleProviderType(opts.Evaluator)
		cfg.Evaluator.Command = ""
	}
}

// buildConversation loads the conversation from the prompt or file
func buildConversation(opts RunOptions) (*conversation.Conversation, error) {
	if opts.File != "" {
		return conversation.ParseFile(opts.File)
	}
	return conversation.FromPrompt(opts.Prompt), nil
}

// buildRoles constructs the generator and evaluator from config
func buildRoles(cfg *config.Config, runID string, bus *events.Bus) (loop.Generator, loop.Evaluator, error) {
	genProvider, err := provider.FromConfig(provider.Config{
		Type:    provider.ProviderType(cfg.Generator.Type),
		Command: cfg.Generator.Command,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("generator: %w", err)
	}
	gen := provider.NewGenerator(genProvider)

	if cfg.Evaluator.Type == config.ProviderHeuristic {
		return gen, provider.NewHeuristicEvaluator(), nil
	}

	evalProvider, err := provider.FromConfig(provider.Config{
		Type:    provider.ProviderType(cfg.Evaluator.Type),
		Command: cfg.Evaluator.Command,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("evaluator: %w", err)
	}

	eval := provider.NewEvaluator(evalProvider, provider.EvaluatorOptions{
		Criteria:         cfg.Evaluator.Criteria,
		RetryOnMalformed: cfg.Evaluator.RetryOnMalformed,
		RunID:            runID,
		Publisher:        bus,
	})
	return gen, eval, nil
}

// finishHistory records the terminal outcome on the run row
func finishHistory(db *history.DB, runID string, result *loop.Result, runErr error) error {
	if runErr != nil {
		return db.FinishRun(runID, history.RunStatusFailed, attemptsFromError(runErr), "", "", runErr.Error())
	}
	return db.FinishRun(runID, string(result.Status), result.AttemptsUsed, result.Output, result.Feedback, "")
}

// attemptsFromError recovers the attempt count from an upstream failure
func attemptsFromError(err error) int {
	var upErr *loop.UpstreamError
	if errors.As(err, &upErr) {
		return upErr.AttemptsUsed
	}
	return 0
}

// sendNotification delivers the run outcome to configured notifiers
func sendNotification(ctx context.Context, cfg *config.Config, bus *events.Bus, runID string, result *loop.Result, runErr error) {
	n := notify.FromConfig(cfg.Notify)
	if n == nil {
		return
	}

	var note notify.Notification
	switch {
	case runErr != nil:
		note = notify.Notification{
			Severity: notify.SeverityCritical,
			Run:      runID,
			Title:    "run failed",
			Message:  runErr.Error(),
		}
	case result.Status == loop.StatusApproved:
		note = notify.Notification{
			Severity: notify.SeverityInfo,
			Run:      runID,
			Title:    "run approved",
			Message:  fmt.Sprintf("approved on attempt %d", result.AttemptsUsed),
		}
	default:
		note = notify.Notification{
			Severity: notify.SeverityWarning,
			Run:      runID,
			Title:    "run exhausted",
			Message:  fmt.Sprintf("no approval after %d attempts", result.AttemptsUsed),
			Context:  map[string]string{"feedback": result.Feedback},
		}
	}

	if err := n.Notify(ctx, note); err != nil {
		bus.Emit(events.NewEvent(events.NotifyFailed, runID).WithError(err))
	}
}
