package orchestrator

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/platform"
	"github.com/roach88/oneclick/internal/store"
	"github.com/roach88/oneclick/internal/testutil"
)

type fixture struct {
	store   *store.Store
	bus     *event.Bus
	window  *testutil.Window
	tray    *testutil.Tray
	opener  *testutil.Opener
	process *testutil.Process
	orch    *Orchestrator
}

func newFixture(t *testing.T, opener *testutil.Opener, opts ...Option) *fixture {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	if opener == nil {
		opener = testutil.NewOpener()
	}
	f := &fixture{
		store:   st,
		bus:     event.New(),
		window:  testutil.NewWindow(DefaultMinSize),
		tray:    &testutil.Tray{},
		opener:  opener,
		process: &testutil.Process{},
	}
	f.orch = New(st, f.bus, Shell{
		Window:  f.window,
		Tray:    f.tray,
		Opener:  f.opener,
		Process: f.process,
	}, opts...)
	f.orch.Register()
	t.Cleanup(f.bus.Wait)
	return f
}

func (f *fixture) launcher(t *testing.T, name string, paths ...string) int64 {
	t.Helper()
	id, err := f.store.CreateLauncher(t.Context(), name, nil)
	require.NoError(t, err)
	for _, p := range paths {
		_, err := f.store.CreateResource(t.Context(), id, "", p)
		require.NoError(t, err)
	}
	return id
}

func (f *fixture) setting(t *testing.T, key, value string) {
	t.Helper()
	require.NoError(t, f.store.SaveSetting(t.Context(), key, value))
}

func (f *fixture) startup(t *testing.T, args ...string) {
	t.Helper()
	f.bus.Publish(t.Context(), event.ApplicationStartupComplete{Args: append([]string{"oneclick"}, args...)})
	f.bus.Wait()
}

var _ Store = (*store.Store)(nil)

var _ platform.Window = (*testutil.Window)(nil)

func ptr(v int64) *int64 { return &v }
