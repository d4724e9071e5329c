// Package commands is the use-case surface called by a user interface: one
// method per command. Each method validates its input, calls the store, and
// publishes the matching event after the change is committed.
//
// Errors from the store are returned unchanged so callers can inspect them
// with model.CodeOf.
package commands

import (
	"context"
	"log/slog"

	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/model"
)

// Store is the persistence layer. *store.Store implements it.
type Store interface {
	CreateLauncher(ctx context.Context, name string, sort *int64) (int64, error)
	RenameLauncher(ctx context.Context, id int64, name string) error
	CopyLauncher(ctx context.Context, id int64) (int64, error)
	DeleteLauncher(ctx context.Context, id int64) error
	ReorderLaunchers(ctx context.Context, updates []model.SortUpdate) error
	ListLaunchers(ctx context.Context) ([]model.Launcher, error)

	CreateResource(ctx context.Context, launcherID int64, name, path string) (int64, error)
	CreateResources(ctx context.Context, launcherID int64, inputs []model.ResourceInput) ([]int64, error)
	RenameResource(ctx context.Context, id int64, name string) error
	DeleteResource(ctx context.Context, id int64) error
	ListResources(ctx context.Context) ([]model.Resource, error)

	SaveSetting(ctx context.Context, key, value string) error
	ReadSetting(ctx context.Context, key string) (model.Setting, bool, error)
	ReadAllSettings(ctx context.Context) ([]model.Setting, error)
}

// Launcher starts a launcher. *orchestrator.Orchestrator implements it.
type Launcher interface {
	Launch(ctx context.Context, id int64) error
}

// Service implements the command surface.
type Service struct {
	store    Store
	bus      *event.Bus
	launcher Launcher
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service.
func New(store Store, bus *event.Bus, launcher Launcher, opts ...Option) *Service {
	s := &Service{
		store:    store,
		bus:      bus,
		launcher: launcher,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) launchersChanged(ctx context.Context, ids ...int64) {
	s.bus.Publish(ctx, event.LauncherBasicInfoUpdated{LauncherIDs: ids})
}
