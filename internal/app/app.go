package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/orbitcalc/internal/cli"
	"github.com/agbru/orbitcalc/internal/config"
	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/logging"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/orchestration"
	"github.com/agbru/orbitcalc/internal/tui"
	"github.com/agbru/orbitcalc/internal/ui"
)

// Application represents the orbitcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   orbit.ClassifierFactory
	ErrWriter io.Writer
	Logger    logging.Logger
	// In feeds the interactive session. Nil selects stdin.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom ClassifierFactory for the application.
func WithFactory(f orbit.ClassifierFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader of the interactive session.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = orbit.NewDefaultFactory()
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "app")
	}

	programName := "orbitcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	app.Config = config.ApplyAdaptiveDefaults(cfg)
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.Serve != "":
		a.Logger.Debug("mode selected", logging.String("mode", "serve"))
		return a.runServer(ctx, out)
	case a.Config.TUI:
		a.Logger.Debug("mode selected", logging.String("mode", "tui"))
		return a.runTUI(ctx, out)
	case a.Config.Interactive:
		a.Logger.Debug("mode selected", logging.String("mode", "interactive"))
		return a.runREPL(out)
	}

	a.Logger.Debug("mode selected",
		logging.String("mode", "calculate"),
		logging.Int("n", a.Config.N),
		logging.String("algo", a.Config.Algo),
		logging.String("action", a.Config.Action),
	)
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the orbit browser. Each run inside the browser carries its
// own timeout; the session ends on a signal or on quit.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	classifiers := orchestration.GetClassifiersToRun(a.Config.Algo, a.Factory)
	return tui.Run(ctx, classifiers, a.Config, Version)
}

// runREPL starts the interactive session on stdin.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo:   a.Config.Algo,
		DefaultAction: a.Config.Action,
		Timeout:       a.Config.Timeout,
		Workers:       a.Config.Workers,
	})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
