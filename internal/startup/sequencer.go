package startup

import (
	"context"
	"log/slog"

	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/platform"
)

// Launcher starts a launcher by id.
type Launcher interface {
	Launch(ctx context.Context, id int64) error
}

// Sequencer announces startup and handles forwarded invocations.
type Sequencer struct {
	bus      *event.Bus
	window   platform.Window
	launcher Launcher
	logger   *slog.Logger
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the sequencer's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// NewSequencer creates a sequencer.
func NewSequencer(bus *event.Bus, window platform.Window, launcher Launcher, opts ...Option) *Sequencer {
	s := &Sequencer{
		bus:      bus,
		window:   window,
		launcher: launcher,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start publishes application:startup_complete with the raw arguments.
// Listeners must already be registered.
func (s *Sequencer) Start(ctx context.Context, argv []string) event.Envelope {
	args := append([]string{}, argv...)
	s.logger.Info("application started", "args", args)
	return s.bus.Publish(ctx, event.ApplicationStartupComplete{Args: args})
}

// Redirect handles the arguments of a second invocation. A launcher id is
// launched in the background; otherwise the window is brought forward.
func (s *Sequencer) Redirect(ctx context.Context, argv []string) {
	s.logger.Info("invocation redirected", "args", argv)

	args := ParseArgs(argv)
	if args.HasLaunch {
		id := args.LaunchID
		s.bus.Go(ctx, "redirect-launch", func(ctx context.Context) error {
			return s.launcher.Launch(ctx, id)
		})
		return
	}

	visible, err := s.window.IsVisible()
	if err != nil {
		s.logger.Warn("window visibility unknown", "error", err)
	}
	if visible {
		if err := s.window.Unmaximize(); err != nil {
			s.logger.Warn("unmaximize window failed", "error", err)
		}
	}
	if err := s.window.Show(); err != nil {
		s.logger.Warn("show window failed", "error", err)
	}
	if err := s.window.Focus(); err != nil {
		s.logger.Warn("focus window failed", "error", err)
	}
}
