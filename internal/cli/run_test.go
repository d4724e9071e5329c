package cli

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSummary(t *testing.T, out string) RunSummary {
	t.Helper()
	var summary RunSummary
	require.NoError(t, json.Unmarshal(decodeResponse(t, out).Data, &summary))
	return summary
}

// seedLauncher creates a launcher with the given resources.
func seedLauncher(t *testing.T, opts *RootOptions, name string, paths ...string) {
	t.Helper()
	jsonOpts := *opts
	jsonOpts.Format = "json"

	out, err := execute(t, NewLauncherCommand(&jsonOpts), "create", name)
	require.NoError(t, err)
	var created LauncherResult
	require.NoError(t, json.Unmarshal(decodeResponse(t, out).Data, &created))

	if len(paths) > 0 {
		args := append([]string{"add", strconv.FormatInt(created.ID, 10)}, paths...)
		_, err = execute(t, NewResourceCommand(opts), args...)
		require.NoError(t, err)
	}
}

func setSetting(t *testing.T, opts *RootOptions, key, value string) {
	t.Helper()
	_, err := execute(t, NewSettingCommand(opts), "set", key, value)
	require.NoError(t, err)
}

func TestRunOnce_LaunchThenExit(t *testing.T) {
	opts, opener := newTestOptions(t, "json")
	seedLauncher(t, opts, "Work", "/w1", "/w2")
	setSetting(t, opts, "launch_then_exit", "true")

	out, err := execute(t, NewRunCommand(opts), "--launch", "1", "--once")
	require.NoError(t, err)

	summary := decodeSummary(t, out)
	assert.False(t, summary.Visible, "a single launch hides the window")
	assert.Equal(t, []string{"Launch: Work", "-", "Quit"}, summary.Tray)
	require.NotNil(t, summary.ExitCode)
	assert.Equal(t, 0, *summary.ExitCode)
	assert.Equal(t, float64(1), summary.Metrics["oneclick_launchers_launched_total"])
	assert.Equal(t, float64(2), summary.Metrics["oneclick_resources_opens_total"])

	assert.ElementsMatch(t, []string{"/w1", "/w2"}, opener.Opened())
}

func TestRunOnce_AutoStartHides(t *testing.T) {
	opts, opener := newTestOptions(t, "json")
	seedLauncher(t, opts, "A", "/a")
	seedLauncher(t, opts, "B", "/b")
	setSetting(t, opts, "auto_start_launcher_ids", "[1,2]")
	setSetting(t, opts, "hide_after_auto_start", "true")

	out, err := execute(t, NewRunCommand(opts), "--auto", "--once")
	require.NoError(t, err)

	summary := decodeSummary(t, out)
	assert.False(t, summary.Visible)
	assert.Nil(t, summary.ExitCode)
	assert.ElementsMatch(t, []string{"/a", "/b"}, opener.Opened())
}

func TestRunOnce_ForwardsRawArgs(t *testing.T) {
	opts, opener := newTestOptions(t, "json")
	seedLauncher(t, opts, "A", "/a")

	out, err := execute(t, NewRunCommand(opts), "--once", "--", "--launch=1")
	require.NoError(t, err)

	summary := decodeSummary(t, out)
	assert.False(t, summary.Visible)
	assert.Equal(t, []string{"/a"}, opener.Opened())
}

func TestRunOnce_Text(t *testing.T) {
	opts, _ := newTestOptions(t, "text")
	seedLauncher(t, opts, "Work")

	out, err := execute(t, NewRunCommand(opts), "--once")
	require.NoError(t, err)
	assert.Contains(t, out, "Window: visible")
	assert.Contains(t, out, "Launch: Work")
	assert.NotContains(t, out, "Exit requested")
}

func TestRunControl_CloseExits(t *testing.T) {
	opts, _ := newTestOptions(t, "json")
	setSetting(t, opts, "close_main_panel", "m2")

	cmd := NewRunCommand(opts)
	cmd.SetIn(strings.NewReader("tray-click\nclose\n"))
	out, err := execute(t, cmd, "--control")
	require.NoError(t, err)

	summary := decodeSummary(t, out)
	assert.False(t, summary.Visible)
	require.NotNil(t, summary.ExitCode)
	assert.Equal(t, 0, *summary.ExitCode)
}

func TestRunControl_Commands(t *testing.T) {
	opts, opener := newTestOptions(t, "json")
	seedLauncher(t, opts, "Work", "/w")

	cmd := NewRunCommand(opts)
	cmd.SetIn(strings.NewReader(strings.Join([]string{
		"# comment",
		"",
		"bogus",
		"launch nope",
		"menu launch_1",
		"drop /tmp/x",
		"scale",
		"redirect",
		"close",
	}, "\n")))
	out, err := execute(t, cmd, "--control")
	require.NoError(t, err)

	summary := decodeSummary(t, out)
	// Close without m2 only hides.
	assert.False(t, summary.Visible)
	assert.Nil(t, summary.ExitCode)
	assert.Equal(t, []string{"/w"}, opener.Opened())
	// startup_complete, launched and drag_drop.
	assert.Equal(t, float64(3), summary.Metrics["oneclick_events_published_total"])
}

func TestRunControl_QuitStopsReading(t *testing.T) {
	opts, opener := newTestOptions(t, "json")
	seedLauncher(t, opts, "Work", "/w")

	cmd := NewRunCommand(opts)
	cmd.SetIn(strings.NewReader("quit\nlaunch 1\n"))
	out, err := execute(t, cmd, "--control")
	require.NoError(t, err)

	summary := decodeSummary(t, out)
	require.NotNil(t, summary.ExitCode)
	assert.Equal(t, 0, *summary.ExitCode)
	assert.Empty(t, opener.Opened())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	opts, _ := newTestOptions(t, "text")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	cmd := NewRunCommand(opts)
	cmd.SetContext(ctx)
	out, err := execute(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "oneclick running")
}

func TestStartupArgv(t *testing.T) {
	opts := &RunOptions{Auto: true, Launch: 7}
	assert.Equal(t, []string{"oneclick", "--auto", "launch", "7", "extra"}, startupArgv(opts, true, []string{"extra"}))
	assert.Equal(t, []string{"oneclick", "--auto"}, startupArgv(opts, false, nil))
}
