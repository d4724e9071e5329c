package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/oneclick/internal/model"
)

// createTestStore creates a new store backed by a temporary database file.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestLauncher creates a launcher with default sort and returns its id.
func createTestLauncher(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	id, err := s.CreateLauncher(context.Background(), name, nil)
	require.NoError(t, err)
	return id
}

// createTestResources adds resources with the given paths to a launcher.
func createTestResources(t *testing.T, s *Store, launcherID int64, paths ...string) []int64 {
	t.Helper()
	inputs := make([]model.ResourceInput, len(paths))
	for i, p := range paths {
		inputs[i] = model.ResourceInput{Path: p}
	}
	ids, err := s.CreateResources(context.Background(), launcherID, inputs)
	require.NoError(t, err)
	return ids
}

// execSQL runs raw SQL against the store, e.g. to install failure triggers.
func execSQL(t *testing.T, s *Store, query string) {
	t.Helper()
	_, err := s.DB().Exec(query)
	require.NoError(t, err)
}

// countRows returns the number of rows matching a WHERE clause.
func countRows(t *testing.T, s *Store, table, where string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM "+table+" WHERE "+where, args...).Scan(&n))
	return n
}
