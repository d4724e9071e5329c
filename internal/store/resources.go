package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/oneclick/internal/model"
)

// CreateResource adds one resource to a launcher and returns its id.
// An empty name is derived from the path; an empty path is rejected.
// The owning launcher must exist.
func (s *Store) CreateResource(ctx context.Context, launcherID int64, name, path string) (int64, error) {
	const op = "create resource"

	var id int64
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		if err := launcherExists(ctx, tx, op, launcherID); err != nil {
			return err
		}
		var err error
		id, err = insertResource(ctx, tx, launcherID, model.ResourceInput{Name: name, Path: path})
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateResources adds a batch of resources to one launcher. The whole
// batch commits or none of it does. Ids are returned in input order.
func (s *Store) CreateResources(ctx context.Context, launcherID int64, inputs []model.ResourceInput) ([]int64, error) {
	const op = "create resources"

	ids := make([]int64, 0, len(inputs))
	if len(inputs) == 0 {
		return ids, nil
	}

	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		if err := launcherExists(ctx, tx, op, launcherID); err != nil {
			return err
		}
		for _, in := range inputs {
			id, err := insertResource(ctx, tx, launcherID, in)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func insertResource(ctx context.Context, q querier, launcherID int64, in model.ResourceInput) (int64, error) {
	const op = "create resource"

	if strings.TrimSpace(in.Path) == "" {
		return 0, model.InvalidArgumentError(op, "resource path is empty")
	}
	name := model.NormalizeName(in.Name)
	if name == "" {
		name = model.NormalizeName(model.DeriveResourceName(in.Path))
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO launcher_resource (launcher_id, name, path)
		VALUES (?, ?, ?)
	`, launcherID, name, in.Path)
	if err != nil {
		return 0, storageErr(op, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr(op, fmt.Errorf("last insert id: %w", err))
	}
	return id, nil
}

// RenameResource changes a resource's display name.
func (s *Store) RenameResource(ctx context.Context, id int64, name string) error {
	const op = "rename resource"

	name = model.NormalizeName(name)
	if name == "" {
		return model.InvalidArgumentError(op, "resource name is empty")
	}

	result, err := s.db.ExecContext(ctx, `UPDATE launcher_resource SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return storageErr(op, err)
	}
	return requireAffected(op, result, func() error { return resourceNotFound(op, id) })
}

// DeleteResource removes one resource.
func (s *Store) DeleteResource(ctx context.Context, id int64) error {
	const op = "delete resource"

	result, err := s.db.ExecContext(ctx, `DELETE FROM launcher_resource WHERE id = ?`, id)
	if err != nil {
		return storageErr(op, err)
	}
	return requireAffected(op, result, func() error { return resourceNotFound(op, id) })
}

// DeleteResourcesForLauncher removes every resource owned by a launcher.
// Deleting from a launcher without resources is not an error.
func (s *Store) DeleteResourcesForLauncher(ctx context.Context, launcherID int64) error {
	return deleteResourcesForLauncher(ctx, s.db, launcherID)
}

func deleteResourcesForLauncher(ctx context.Context, q querier, launcherID int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM launcher_resource WHERE launcher_id = ?`, launcherID); err != nil {
		return storageErr("delete resources for launcher", err)
	}
	return nil
}

// ListResources returns every resource, most recently created first.
func (s *Store) ListResources(ctx context.Context) ([]model.Resource, error) {
	return queryResources(ctx, s.db, "list resources", `
		SELECT id, launcher_id, name, path
		FROM launcher_resource
		ORDER BY id DESC
	`)
}

// ListResourcesForLauncher returns one launcher's resources, most recently
// created first.
func (s *Store) ListResourcesForLauncher(ctx context.Context, launcherID int64) ([]model.Resource, error) {
	return listResourcesForLauncher(ctx, s.db, launcherID)
}

func listResourcesForLauncher(ctx context.Context, q querier, launcherID int64) ([]model.Resource, error) {
	return queryResources(ctx, q, "list resources for launcher", `
		SELECT id, launcher_id, name, path
		FROM launcher_resource
		WHERE launcher_id = ?
		ORDER BY id DESC
	`, launcherID)
}

// ListResourcesForLaunchers returns the resources owned by any of the given
// launchers, most recently created first. An empty id set yields an empty
// result without touching the database.
func (s *Store) ListResourcesForLaunchers(ctx context.Context, launcherIDs []int64) ([]model.Resource, error) {
	if len(launcherIDs) == 0 {
		return []model.Resource{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(launcherIDs)), ",")
	args := make([]any, len(launcherIDs))
	for i, id := range launcherIDs {
		args[i] = id
	}

	return queryResources(ctx, s.db, "list resources for launchers", `
		SELECT id, launcher_id, name, path
		FROM launcher_resource
		WHERE launcher_id IN (`+placeholders+`)
		ORDER BY id DESC
	`, args...)
}

func queryResources(ctx context.Context, q querier, op, query string, args ...any) ([]model.Resource, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	resources := []model.Resource{}
	for rows.Next() {
		var r model.Resource
		if err := rows.Scan(&r.ID, &r.LauncherID, &r.Name, &r.Path); err != nil {
			return nil, storageErr(op, fmt.Errorf("scan resource: %w", err))
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, fmt.Errorf("iterate resources: %w", err))
	}
	return resources, nil
}
