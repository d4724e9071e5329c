package commands

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/model"
	"github.com/roach88/oneclick/internal/store"
)

type captured struct {
	mu       sync.Mutex
	updated  [][]int64
	settings []event.SettingUpdated
}

func (c *captured) Updated() [][]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]int64(nil), c.updated...)
}

func (c *captured) Settings() []event.SettingUpdated {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.SettingUpdated(nil), c.settings...)
}

type stubLauncher struct {
	mu  sync.Mutex
	ids []int64
	err error
}

func (l *stubLauncher) Launch(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids = append(l.ids, id)
	return l.err
}

func newService(t *testing.T) (*Service, *store.Store, *event.Bus, *captured, *stubLauncher) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	bus := event.New()
	t.Cleanup(bus.Wait)

	c := &captured{}
	event.On(bus, "capture", func(_ context.Context, e event.LauncherBasicInfoUpdated) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.updated = append(c.updated, e.LauncherIDs)
		return nil
	})
	event.On(bus, "capture", func(_ context.Context, e event.SettingUpdated) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.settings = append(c.settings, e)
		return nil
	})

	l := &stubLauncher{}
	return New(st, bus, l), st, bus, c, l
}

func TestCreateLauncher(t *testing.T) {
	svc, st, bus, c, _ := newService(t)
	ctx := t.Context()

	id, err := svc.CreateLauncher(ctx, "  Work ")
	require.NoError(t, err)
	bus.Wait()

	l, err := st.FindLauncher(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Work", l.Name)
	assert.Equal(t, [][]int64{{id}}, c.Updated())
}

func TestCreateLauncher_DefaultName(t *testing.T) {
	svc, st, _, _, _ := newService(t)
	ctx := t.Context()

	id, err := svc.CreateLauncher(ctx, "")
	require.NoError(t, err)

	l, err := st.FindLauncher(ctx, id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(l.Name, model.DefaultLauncherPrefix), l.Name)
	assert.Len(t, l.Name, len(model.DefaultLauncherPrefix)+4)
}

func TestRenameLauncher(t *testing.T) {
	svc, st, bus, c, _ := newService(t)
	ctx := t.Context()
	id, err := svc.CreateLauncher(ctx, "Old")
	require.NoError(t, err)

	require.NoError(t, svc.RenameLauncher(ctx, id, "New"))
	bus.Wait()

	l, err := st.FindLauncher(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", l.Name)
	assert.Len(t, c.Updated(), 2)
}

func TestRenameLauncher_NotFoundPublishesNothing(t *testing.T) {
	svc, _, bus, c, _ := newService(t)

	err := svc.RenameLauncher(t.Context(), 404, "x")
	bus.Wait()

	assert.True(t, model.IsNotFound(err))
	assert.Empty(t, c.Updated())
}

func TestCopyLauncher(t *testing.T) {
	svc, st, bus, c, _ := newService(t)
	ctx := t.Context()
	id, err := svc.CreateLauncher(ctx, "Work")
	require.NoError(t, err)
	_, err = svc.AddResources(ctx, id, []model.ResourceInput{{Path: "/a"}, {Path: "/b"}})
	require.NoError(t, err)

	copyID, err := svc.CopyLauncher(ctx, id)
	require.NoError(t, err)
	bus.Wait()

	l, err := st.FindLauncher(ctx, copyID)
	require.NoError(t, err)
	assert.Equal(t, "Work-copy", l.Name)
	assert.Contains(t, c.Updated(), []int64{copyID})

	res, err := st.ListResourcesForLauncher(ctx, copyID)
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestDeleteLauncher(t *testing.T) {
	svc, st, bus, c, _ := newService(t)
	ctx := t.Context()
	id, err := svc.CreateLauncher(ctx, "Work")
	require.NoError(t, err)
	_, err = svc.AddResource(ctx, id, "", "/a")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLauncher(ctx, id))
	bus.Wait()

	_, err = st.FindLauncher(ctx, id)
	assert.True(t, model.IsNotFound(err))
	all, err := st.ListResources(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Len(t, c.Updated(), 2)
}

func TestReorderLaunchers(t *testing.T) {
	svc, st, bus, c, _ := newService(t)
	ctx := t.Context()
	a, err := svc.CreateLauncher(ctx, "A")
	require.NoError(t, err)
	b, err := svc.CreateLauncher(ctx, "B")
	require.NoError(t, err)

	require.NoError(t, svc.ReorderLaunchers(ctx, []model.SortUpdate{{ID: a, Sort: 2}, {ID: b, Sort: 1}}))
	bus.Wait()

	list, err := st.ListLaunchers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b, list[0].ID)
	assert.Equal(t, a, list[1].ID)
	assert.Contains(t, c.Updated(), []int64{a, b})
}

func TestQueryLaunchers(t *testing.T) {
	svc, _, _, _, _ := newService(t)
	ctx := t.Context()
	work, err := svc.CreateLauncher(ctx, "Work")
	require.NoError(t, err)
	empty, err := svc.CreateLauncher(ctx, "Empty")
	require.NoError(t, err)
	first, err := svc.AddResource(ctx, work, "Editor", "/usr/bin/editor")
	require.NoError(t, err)
	second, err := svc.AddResource(ctx, work, "", "https://example.com/page")
	require.NoError(t, err)

	views, err := svc.QueryLaunchers(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, work, views[0].ID)
	require.Len(t, views[0].Resources, 2)
	assert.Equal(t, second, views[0].Resources[0].ID)
	assert.Equal(t, "https://example.com/page", views[0].Resources[0].Name)
	assert.Equal(t, first, views[0].Resources[1].ID)

	assert.Equal(t, empty, views[1].ID)
	assert.NotNil(t, views[1].Resources)
	assert.Empty(t, views[1].Resources)
}

func TestResourceCommands(t *testing.T) {
	svc, st, _, _, _ := newService(t)
	ctx := t.Context()
	id, err := svc.CreateLauncher(ctx, "Work")
	require.NoError(t, err)

	rid, err := svc.AddResource(ctx, id, "", `C:\Tools\app.exe`)
	require.NoError(t, err)
	require.NoError(t, svc.RenameResource(ctx, rid, "App"))

	res, err := st.ListResourcesForLauncher(ctx, id)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "App", res[0].Name)

	require.NoError(t, svc.DeleteResource(ctx, rid))
	assert.True(t, model.IsNotFound(svc.DeleteResource(ctx, rid)))

	_, err = svc.AddResource(ctx, 404, "", "/a")
	assert.True(t, model.IsNotFound(err))

	_, err = svc.AddResources(ctx, id, []model.ResourceInput{{Path: "/ok"}, {Path: ""}})
	assert.True(t, model.IsInvalidArgument(err))
	res, err = st.ListResourcesForLauncher(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, res, "failed batch leaves nothing behind")
}

func TestLaunch_Delegates(t *testing.T) {
	svc, _, _, _, l := newService(t)

	require.NoError(t, svc.Launch(t.Context(), 5))
	assert.Equal(t, []int64{5}, l.ids)
}

func TestSettings(t *testing.T) {
	svc, _, bus, c, _ := newService(t)
	ctx := t.Context()

	require.NoError(t, svc.SaveSetting(ctx, model.SettingTheme, "dark"))
	require.NoError(t, svc.SaveSetting(ctx, model.SettingTheme, "light"))
	require.NoError(t, svc.SaveSetting(ctx, model.SettingCloseMainPanel, "m2"))
	bus.Wait()

	got, ok, err := svc.ReadSetting(ctx, model.SettingTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "light", got.Value)

	_, ok, err = svc.ReadSetting(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := svc.ReadAllSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Setting{
		{Key: model.SettingCloseMainPanel, Value: "m2"},
		{Key: model.SettingTheme, Value: "light"},
	}, all)

	assert.ElementsMatch(t, []event.SettingUpdated{
		{Key: model.SettingTheme, Value: "dark"},
		{Key: model.SettingTheme, Value: "light"},
		{Key: model.SettingCloseMainPanel, Value: "m2"},
	}, c.Settings())
}

func TestSaveSetting_EmptyKey(t *testing.T) {
	svc, _, bus, c, _ := newService(t)

	err := svc.SaveSetting(t.Context(), "", "v")
	bus.Wait()

	assert.True(t, model.IsInvalidArgument(err))
	assert.Empty(t, c.Settings())
}
