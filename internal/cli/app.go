package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/oneclick/internal/commands"
	"github.com/roach88/oneclick/internal/config"
	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/metrics"
	"github.com/roach88/oneclick/internal/orchestrator"
	"github.com/roach88/oneclick/internal/platform"
	"github.com/roach88/oneclick/internal/startup"
	"github.com/roach88/oneclick/internal/store"
)

// App is one wired instance of the application: store, bus, listeners and
// the command surface, driving a headless window and tray.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *store.Store
	Bus     *event.Bus
	Metrics *metrics.Collector

	Orchestrator *orchestrator.Orchestrator
	Commands     *commands.Service
	Sequencer    *startup.Sequencer

	Window *platform.HeadlessWindow
	Tray   *platform.HeadlessTray
}

// openApp loads configuration, opens the database and registers every
// listener. exit receives exit requests from the orchestrator; nil only
// logs them.
func openApp(cmd *cobra.Command, opts *RootOptions, exit func(code int)) (*App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg, opts.Verbose, cmd.ErrOrStderr())

	logger.Debug("opening database", "path", cfg.Database.Path)
	st, err := store.Open(cfg.Database.Path, store.Options{MaxConnections: cfg.Database.MaxConnections})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	collector := metrics.New(nil)
	bus := event.New(event.WithLogger(logger), event.WithObserver(collector))

	minSize := platform.Size{Width: cfg.Window.MinWidth, Height: cfg.Window.MinHeight}
	window := platform.NewHeadlessWindow(logger, minSize)
	tray := platform.NewHeadlessTray(logger)

	opener := opts.Opener
	if opener == nil {
		opener = platform.NewShellOpener()
	}
	if exit == nil {
		exit = func(code int) {
			logger.Debug("exit requested outside run", "code", code)
		}
	}

	orch := orchestrator.New(st, bus, orchestrator.Shell{
		Window:  window,
		Tray:    tray,
		Opener:  opener,
		Process: platform.ExitFunc(exit),
	},
		orchestrator.WithLogger(logger),
		orchestrator.WithRecorder(collector),
		orchestrator.WithMinSize(minSize),
		orchestrator.WithScaleDebounce(cfg.ScaleDebounce()),
	)
	orch.Register()

	return &App{
		Config:       cfg,
		Logger:       logger,
		Store:        st,
		Bus:          bus,
		Metrics:      collector,
		Orchestrator: orch,
		Commands:     commands.New(st, bus, orch, commands.WithLogger(logger)),
		Sequencer:    startup.NewSequencer(bus, window, orch, startup.WithLogger(logger)),
		Window:       window,
		Tray:         tray,
	}, nil
}

// Close waits for in-flight listeners, then closes the database.
func (a *App) Close() error {
	a.Bus.Wait()
	return a.Store.Close()
}

// loadConfig reads the config file named by --config and applies --db.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		var vErr *config.ValidationError
		if errors.As(err, &vErr) {
			return nil, err
		}
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}
	return cfg, nil
}

// newLogger builds the stderr logger. --verbose forces debug level.
func newLogger(cfg *config.Config, verbose bool, w io.Writer) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// withApp runs fn against a freshly opened app and closes it afterwards.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, app *App, f *OutputFormatter) error) error {
	f := newFormatter(opts, cmd)

	app, err := openApp(cmd, opts, nil)
	if err != nil {
		return f.Fail("failed to start", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			app.Logger.Error("error closing database", "error", closeErr)
		}
	}()

	return fn(commandContext(cmd), app, f)
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
