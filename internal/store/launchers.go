package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/oneclick/internal/model"
)

// CreateLauncher inserts a launcher and returns its id.
//
// When sort is nil the launcher is appended: it gets MAX(sort)+1, or 1 on an
// empty table. The name is normalized; an empty name is rejected because
// substituting a default is the caller's job.
func (s *Store) CreateLauncher(ctx context.Context, name string, sort *int64) (int64, error) {
	return createLauncher(ctx, s.db, name, sort)
}

func createLauncher(ctx context.Context, q querier, name string, sort *int64) (int64, error) {
	const op = "create launcher"

	name = model.NormalizeName(name)
	if name == "" {
		return 0, model.InvalidArgumentError(op, "launcher name is empty")
	}

	var sortArg sql.NullInt64
	if sort != nil {
		sortArg = sql.NullInt64{Int64: *sort, Valid: true}
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO launcher (name, sort)
		VALUES (?, COALESCE(?, (SELECT COALESCE(MAX(sort), 0) + 1 FROM launcher)))
	`, name, sortArg)
	if err != nil {
		return 0, storageErr(op, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr(op, fmt.Errorf("last insert id: %w", err))
	}
	return id, nil
}

// RenameLauncher changes a launcher's display name.
func (s *Store) RenameLauncher(ctx context.Context, id int64, name string) error {
	const op = "rename launcher"

	name = model.NormalizeName(name)
	if name == "" {
		return model.InvalidArgumentError(op, "launcher name is empty")
	}

	result, err := s.db.ExecContext(ctx, `UPDATE launcher SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return storageErr(op, err)
	}
	return requireAffected(op, result, func() error { return launcherNotFound(op, id) })
}

// ReorderLaunchers rewrites the sort key of every launcher in updates.
// The batch is one transaction: an unknown id rolls back all updates.
func (s *Store) ReorderLaunchers(ctx context.Context, updates []model.SortUpdate) error {
	const op = "reorder launchers"

	if len(updates) == 0 {
		return model.InvalidArgumentError(op, "no launchers to reorder")
	}

	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		for _, u := range updates {
			result, err := tx.ExecContext(ctx, `UPDATE launcher SET sort = ? WHERE id = ?`, u.Sort, u.ID)
			if err != nil {
				return storageErr(op, err)
			}
			if err := requireAffected(op, result, func() error { return launcherNotFound(op, u.ID) }); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteLauncher removes a launcher and every resource it owns in one
// transaction. Resources are deleted first so that a failure part-way
// leaves the launcher and all of its resources in place.
func (s *Store) DeleteLauncher(ctx context.Context, id int64) error {
	const op = "delete launcher"

	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		if _, err := findLauncher(ctx, tx, op, id); err != nil {
			return err
		}
		if err := deleteResourcesForLauncher(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM launcher WHERE id = ?`, id); err != nil {
			return storageErr(op, err)
		}
		return nil
	})
}

// ListLaunchers returns all launchers ordered by sort ascending, then id
// descending. Returns an empty slice (not nil) when there are none.
func (s *Store) ListLaunchers(ctx context.Context) ([]model.Launcher, error) {
	const op = "list launchers"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sort
		FROM launcher
		ORDER BY sort ASC, id DESC
	`)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	launchers := []model.Launcher{}
	for rows.Next() {
		var l model.Launcher
		if err := rows.Scan(&l.ID, &l.Name, &l.Sort); err != nil {
			return nil, storageErr(op, fmt.Errorf("scan launcher: %w", err))
		}
		launchers = append(launchers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, fmt.Errorf("iterate launchers: %w", err))
	}
	return launchers, nil
}

// FindLauncher returns the launcher with the given id, or a NotFound error.
func (s *Store) FindLauncher(ctx context.Context, id int64) (model.Launcher, error) {
	return findLauncher(ctx, s.db, "find launcher", id)
}

func findLauncher(ctx context.Context, q querier, op string, id int64) (model.Launcher, error) {
	var l model.Launcher
	err := q.QueryRowContext(ctx, `SELECT id, name, sort FROM launcher WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Sort)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Launcher{}, launcherNotFound(op, id)
	}
	if err != nil {
		return model.Launcher{}, storageErr(op, err)
	}
	return l, nil
}

// CopyLauncher duplicates a launcher and all of its resources atomically.
//
// The copy is named CopyName(source), keeps the source's sort value, and
// receives every resource with identical names and paths but new ids.
// Resources are inserted oldest first so the copy lists them in the same
// relative order as the source. Any failure leaves no trace of the copy.
func (s *Store) CopyLauncher(ctx context.Context, id int64) (int64, error) {
	const op = "copy launcher"

	var newID int64
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		src, err := findLauncher(ctx, tx, op, id)
		if err != nil {
			return err
		}

		resources, err := listResourcesForLauncher(ctx, tx, id)
		if err != nil {
			return err
		}

		newID, err = createLauncher(ctx, tx, model.CopyName(src.Name), &src.Sort)
		if err != nil {
			return err
		}

		for i := len(resources) - 1; i >= 0; i-- {
			r := resources[i]
			if _, err := insertResource(ctx, tx, newID, model.ResourceInput{Name: r.Name, Path: r.Path}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// launcherExists returns a NotFound error unless the launcher exists.
func launcherExists(ctx context.Context, q querier, op string, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM launcher WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return launcherNotFound(op, id)
	}
	if err != nil {
		return storageErr(op, err)
	}
	return nil
}

// requireAffected returns notFound() when an UPDATE or DELETE matched no rows.
func requireAffected(op string, result sql.Result, notFound func() error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return storageErr(op, fmt.Errorf("rows affected: %w", err))
	}
	if n == 0 {
		return notFound()
	}
	return nil
}
