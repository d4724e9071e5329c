package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/oneclick/internal/model"
)

// SaveSetting upserts a key/value pair. Saving the same value twice is a no-op.
func (s *Store) SaveSetting(ctx context.Context, key, value string) error {
	const op = "save setting"

	if key == "" {
		return model.InvalidArgumentError(op, "setting key is empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return storageErr(op, err)
	}
	return nil
}

// ReadSetting returns the setting for key. ok is false when the key is unset;
// that is not an error.
func (s *Store) ReadSetting(ctx context.Context, key string) (setting model.Setting, ok bool, err error) {
	const op = "read setting"

	err = s.db.QueryRowContext(ctx, `SELECT key, value FROM settings WHERE key = ?`, key).
		Scan(&setting.Key, &setting.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Setting{}, false, nil
	}
	if err != nil {
		return model.Setting{}, false, storageErr(op, err)
	}
	return setting, true, nil
}

// ReadAllSettings returns every stored setting ordered by key.
func (s *Store) ReadAllSettings(ctx context.Context) ([]model.Setting, error) {
	const op = "read all settings"

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	settings := []model.Setting{}
	for rows.Next() {
		var st model.Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, storageErr(op, fmt.Errorf("scan setting: %w", err))
		}
		settings = append(settings, st)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, fmt.Errorf("iterate settings: %w", err))
	}
	return settings, nil
}
