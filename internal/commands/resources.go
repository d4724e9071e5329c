package commands

import (
	"context"

	"github.com/roach88/oneclick/internal/model"
)

// AddResource adds one resource. An empty name is derived from the path.
func (s *Service) AddResource(ctx context.Context, launcherID int64, name, path string) (int64, error) {
	id, err := s.store.CreateResource(ctx, launcherID, name, path)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("resource added", "launcher_id", launcherID, "resource_id", id)
	return id, nil
}

// AddResources adds a batch of resources; all of them or none.
func (s *Service) AddResources(ctx context.Context, launcherID int64, inputs []model.ResourceInput) ([]int64, error) {
	ids, err := s.store.CreateResources(ctx, launcherID, inputs)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("resources added", "launcher_id", launcherID, "count", len(ids))
	return ids, nil
}

// RenameResource changes a resource's name.
func (s *Service) RenameResource(ctx context.Context, id int64, name string) error {
	return s.store.RenameResource(ctx, id, name)
}

// DeleteResource removes one resource.
func (s *Service) DeleteResource(ctx context.Context, id int64) error {
	return s.store.DeleteResource(ctx, id)
}
