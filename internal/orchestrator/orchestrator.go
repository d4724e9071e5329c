package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/oneclick/internal/debounce"
	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/model"
	"github.com/roach88/oneclick/internal/platform"
)

// DefaultMinSize is the size the window is reset to after a scale change.
var DefaultMinSize = platform.Size{Width: 800, Height: 600}

// DefaultScaleDebounce suppresses repeated scale-change resets.
const DefaultScaleDebounce = 500 * time.Millisecond

// Store is the read side of the persistence layer the listeners need.
// *store.Store implements it.
type Store interface {
	FindLauncher(ctx context.Context, id int64) (model.Launcher, error)
	ListLaunchers(ctx context.Context) ([]model.Launcher, error)
	ListResourcesForLauncher(ctx context.Context, launcherID int64) ([]model.Resource, error)
	ListResourcesForLaunchers(ctx context.Context, launcherIDs []int64) ([]model.Resource, error)
	ReadSetting(ctx context.Context, key string) (model.Setting, bool, error)
}

// Recorder counts launches. *metrics.Collector implements it.
type Recorder interface {
	ResourceOpened(err error)
	LauncherStarted()
}

type nopRecorder struct{}

func (nopRecorder) ResourceOpened(error) {}
func (nopRecorder) LauncherStarted()     {}

// Shell bundles the platform collaborators.
type Shell struct {
	Window  platform.Window
	Tray    platform.Tray
	Opener  platform.Opener
	Process platform.Process
}

// Orchestrator owns the listener set and the window notification handlers.
//
// Thread-safety: every method is safe for concurrent use. Listener runs
// share no mutable state except the scale-change gate.
type Orchestrator struct {
	store  Store
	bus    *event.Bus
	shell  Shell
	logger *slog.Logger

	recorder      Recorder
	minSize       platform.Size
	scaleDebounce time.Duration
	scaleGate     *debounce.Gate
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithRecorder sets the launch counter sink.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithMinSize sets the size restored after a scale change.
func WithMinSize(size platform.Size) Option {
	return func(o *Orchestrator) {
		o.minSize = size
	}
}

// WithScaleDebounce sets the scale-change debounce interval.
func WithScaleDebounce(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.scaleDebounce = d
	}
}

// New creates an orchestrator. Call Register before publishing events.
func New(store Store, bus *event.Bus, shell Shell, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:         store,
		bus:           bus,
		shell:         shell,
		logger:        slog.Default(),
		recorder:      nopRecorder{},
		minSize:       DefaultMinSize,
		scaleDebounce: DefaultScaleDebounce,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.scaleGate = debounce.New(o.scaleDebounce)
	return o
}

// Register installs the listener set on the bus.
func (o *Orchestrator) Register() {
	event.On(o.bus, "startup-sequence", o.onStartupComplete)
	event.On(o.bus, "hide-then-exit", o.onLauncherLaunched)
	event.On(o.bus, "refresh-tray", o.onBasicInfoUpdated)
	event.On(o.bus, "apply-theme", o.onSettingUpdated)
}

// settingEnabled reports whether a boolean setting is set to true. Read
// failures count as false.
func (o *Orchestrator) settingEnabled(ctx context.Context, key string) bool {
	setting, ok, err := o.store.ReadSetting(ctx, key)
	if err != nil {
		o.logger.Warn("read setting failed", "key", key, "error", err)
		return false
	}
	return ok && model.ParseBool(setting.Value)
}
