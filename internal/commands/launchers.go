package commands

import (
	"context"

	"github.com/roach88/oneclick/internal/model"
)

// CreateLauncher appends a launcher. An empty name gets a generated default.
func (s *Service) CreateLauncher(ctx context.Context, name string) (int64, error) {
	name = model.NormalizeName(name)
	if name == "" {
		name = model.DefaultLauncherName()
	}

	id, err := s.store.CreateLauncher(ctx, name, nil)
	if err != nil {
		return 0, err
	}
	s.logger.Info("launcher created", "launcher_id", id, "name", name)
	s.launchersChanged(ctx, id)
	return id, nil
}

// RenameLauncher changes a launcher's name.
func (s *Service) RenameLauncher(ctx context.Context, id int64, name string) error {
	if err := s.store.RenameLauncher(ctx, id, name); err != nil {
		return err
	}
	s.launchersChanged(ctx, id)
	return nil
}

// CopyLauncher duplicates a launcher with its resources and returns the new
// launcher's id.
func (s *Service) CopyLauncher(ctx context.Context, id int64) (int64, error) {
	newID, err := s.store.CopyLauncher(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Info("launcher copied", "launcher_id", id, "copy_id", newID)
	s.launchersChanged(ctx, newID)
	return newID, nil
}

// DeleteLauncher removes a launcher and its resources.
func (s *Service) DeleteLauncher(ctx context.Context, id int64) error {
	if err := s.store.DeleteLauncher(ctx, id); err != nil {
		return err
	}
	s.logger.Info("launcher deleted", "launcher_id", id)
	s.launchersChanged(ctx, id)
	return nil
}

// ReorderLaunchers applies a batch of sort updates atomically.
func (s *Service) ReorderLaunchers(ctx context.Context, updates []model.SortUpdate) error {
	if err := s.store.ReorderLaunchers(ctx, updates); err != nil {
		return err
	}
	ids := make([]int64, len(updates))
	for i, u := range updates {
		ids[i] = u.ID
	}
	s.launchersChanged(ctx, ids...)
	return nil
}

// QueryLaunchers returns every launcher in list order with its resources
// nested, newest resource first.
func (s *Service) QueryLaunchers(ctx context.Context) ([]model.LauncherView, error) {
	launchers, err := s.store.ListLaunchers(ctx)
	if err != nil {
		return nil, err
	}
	resources, err := s.store.ListResources(ctx)
	if err != nil {
		return nil, err
	}

	byLauncher := make(map[int64][]model.Resource, len(launchers))
	for _, r := range resources {
		byLauncher[r.LauncherID] = append(byLauncher[r.LauncherID], r)
	}

	views := make([]model.LauncherView, 0, len(launchers))
	for _, l := range launchers {
		owned := byLauncher[l.ID]
		if owned == nil {
			owned = []model.Resource{}
		}
		views = append(views, model.LauncherView{
			ID:        l.ID,
			Name:      l.Name,
			Sort:      l.Sort,
			Resources: owned,
		})
	}
	return views, nil
}

// Launch opens every resource of a launcher.
func (s *Service) Launch(ctx context.Context, id int64) error {
	return s.launcher.Launch(ctx, id)
}
