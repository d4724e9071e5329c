package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/oneclick/internal/model"
)

// jsonResponse decodes a CLIResponse keeping data raw.
type jsonResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

func decodeResponse(t *testing.T, out string) jsonResponse {
	t.Helper()
	var resp jsonResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

func listLaunchers(t *testing.T, opts *RootOptions) []model.LauncherView {
	t.Helper()
	jsonOpts := *opts
	jsonOpts.Format = "json"
	out, err := execute(t, NewLauncherCommand(&jsonOpts), "list")
	require.NoError(t, err)

	var views []model.LauncherView
	require.NoError(t, json.Unmarshal(decodeResponse(t, out).Data, &views))
	return views
}

func TestLauncherList_Golden(t *testing.T) {
	opts, _ := newTestOptions(t, "text")

	_, err := execute(t, NewLauncherCommand(opts), "create", "Work")
	require.NoError(t, err)
	_, err = execute(t, NewResourceCommand(opts), "add", "1", "/usr/bin/editor")
	require.NoError(t, err)
	_, err = execute(t, NewLauncherCommand(opts), "create", "Docs")
	require.NoError(t, err)

	opts.Format = "json"
	out, err := execute(t, NewLauncherCommand(opts), "list")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "launcher_list", []byte(out))
}

func TestLauncherList_Empty(t *testing.T) {
	opts, _ := newTestOptions(t, "text")

	out, err := execute(t, NewLauncherCommand(opts), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No launchers.")

	assert.Empty(t, listLaunchers(t, opts))
}

func TestLauncherCreate_JSON(t *testing.T) {
	opts, _ := newTestOptions(t, "json")

	out, err := execute(t, NewLauncherCommand(opts), "create", "  Work  ")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.JSONEq(t, `{"id":1}`, string(resp.Data))

	views := listLaunchers(t, opts)
	require.Len(t, views, 1)
	assert.Equal(t, "Work", views[0].Name)
}

func TestLauncherCreate_DefaultName(t *testing.T) {
	opts, _ := newTestOptions(t, "text")

	out, err := execute(t, NewLauncherCommand(opts), "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Created launcher 1")

	views := listLaunchers(t, opts)
	require.Len(t, views, 1)
	assert.Contains(t, views[0].Name, model.DefaultLauncherPrefix)
}

func TestLauncherRenameCopyDelete(t *testing.T) {
	opts, _ := newTestOptions(t, "text")

	_, err := execute(t, NewLauncherCommand(opts), "create", "Work")
	require.NoError(t, err)
	_, err = execute(t, NewResourceCommand(opts), "add", "1", "/a", "https://example.com")
	require.NoError(t, err)

	_, err = execute(t, NewLauncherCommand(opts), "rename", "1", "Office")
	require.NoError(t, err)

	out, err := execute(t, NewLauncherCommand(opts), "copy", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied launcher 1 to 2")

	views := listLaunchers(t, opts)
	require.Len(t, views, 2)
	names := []string{views[0].Name, views[1].Name}
	assert.ElementsMatch(t, []string{"Office", "Office" + model.CopySuffix}, names)
	for _, v := range views {
		assert.Len(t, v.Resources, 2)
	}

	_, err = execute(t, NewLauncherCommand(opts), "delete", "1")
	require.NoError(t, err)

	views = listLaunchers(t, opts)
	require.Len(t, views, 1)
	assert.Equal(t, int64(2), views[0].ID)
}

func TestLauncherSort(t *testing.T) {
	opts, _ := newTestOptions(t, "text")

	for _, name := range []string{"A", "B", "C"} {
		_, err := execute(t, NewLauncherCommand(opts), "create", name)
		require.NoError(t, err)
	}

	out, err := execute(t, NewLauncherCommand(opts), "sort", "3=1", "1=2", "2=3")
	require.NoError(t, err)
	assert.Contains(t, out, "Reordered 3 launcher(s)")

	views := listLaunchers(t, opts)
	require.Len(t, views, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{views[0].Name, views[1].Name, views[2].Name})
}

func TestLauncherSort_UnknownIDRollsBack(t *testing.T) {
	opts, _ := newTestOptions(t, "json")

	_, err := execute(t, NewLauncherCommand(opts), "create", "A")
	require.NoError(t, err)

	out, err := execute(t, NewLauncherCommand(opts), "sort", "1=5", "99=1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "NOT_FOUND", decodeResponse(t, out).Error.Code)

	views := listLaunchers(t, opts)
	require.Len(t, views, 1)
	assert.Equal(t, int64(1), views[0].Sort)
}

func TestLauncherSort_BadArguments(t *testing.T) {
	opts, _ := newTestOptions(t, "text")

	for _, arg := range []string{"1", "x=1", "1=y", "0=1"} {
		_, err := execute(t, NewLauncherCommand(opts), "sort", arg)
		require.Error(t, err, arg)
		assert.Equal(t, ExitCommandError, GetExitCode(err), arg)
	}
}

func TestLauncherRename_NotFound(t *testing.T) {
	opts, _ := newTestOptions(t, "json")

	out, err := execute(t, NewLauncherCommand(opts), "rename", "42", "Nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestLauncherLaunch(t *testing.T) {
	opts, opener := newTestOptions(t, "text")

	_, err := execute(t, NewLauncherCommand(opts), "create", "Work")
	require.NoError(t, err)
	_, err = execute(t, NewResourceCommand(opts), "add", "1", "/first", "/second")
	require.NoError(t, err)

	out, err := execute(t, NewLauncherCommand(opts), "launch", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Launched launcher 1")
	assert.Equal(t, []string{"/second", "/first"}, opener.Opened())
}

func TestLauncherLaunch_Unknown(t *testing.T) {
	opts, opener := newTestOptions(t, "text")

	out, err := execute(t, NewLauncherCommand(opts), "launch", "5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]")
	assert.Empty(t, opener.Opened())
}

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}
