package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/oneclick/internal/platform"
	"github.com/roach88/oneclick/internal/startup"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Auto    bool  // started by the OS autostart entry
	Launch  int64 // launcher to start after startup
	Once    bool  // exit once startup has settled
	Control bool  // read control commands from stdin
}

// RunSummary is printed when a non-interactive run ends.
type RunSummary struct {
	Visible  bool               `json:"visible"`
	Theme    string             `json:"theme"`
	Tray     []string           `json:"tray"`
	ExitCode *int               `json:"exit_code,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [args...]",
		Short: "Start the application",
		Long: `Start oneclick: apply the startup visibility rules, build the tray menu,
start the autostart launchers and the launcher named on the command line.

Extra arguments are passed to startup unchanged, so "run -- --auto launch 3"
behaves like an autostarted process asked to launch launcher 3.

With --control, newline-separated commands are read from stdin until EOF:
  launch <id>        start a launcher
  menu <item-id>     select a tray menu item (quit, launch_<id>)
  tray-click         left-click the tray icon
  close              request the window to close
  scale              report a display scale change
  drop <path>...     drop paths on the window
  redirect [args...] forward a second invocation's arguments
  quit               exit

Example:
  oneclick run --auto
  oneclick run --launch 2 --once --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Auto, "auto", false, "mark this start as an OS autostart")
	cmd.Flags().Int64Var(&opts.Launch, "launch", 0, "launcher id to start after startup")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "exit once startup has settled")
	cmd.Flags().BoolVar(&opts.Control, "control", false, "read control commands from stdin until EOF")

	return cmd
}

func runApp(opts *RunOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var exitCode atomic.Int64
	exitCode.Store(-1)
	exit := func(code int) {
		exitCode.CompareAndSwap(-1, int64(code))
		cancel()
	}

	app, err := openApp(cmd, opts.RootOptions, exit)
	if err != nil {
		return formatter.Fail("failed to start", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			app.Logger.Error("error closing database", "error", closeErr)
		}
	}()

	argv := startupArgv(opts, cmd.Flags().Changed("launch"), args)
	app.Logger.Info("oneclick starting", "db", app.Config.Database.Path, "args", argv)
	app.Sequencer.Start(ctx, argv)

	switch {
	case opts.Control:
		app.Bus.Wait()
		done := make(chan struct{})
		go func() {
			defer close(done)
			runControl(ctx, app, cmd.InOrStdin(), exit)
		}()
		select {
		case <-done:
		case <-ctx.Done():
		}
	case opts.Once:
		app.Bus.Wait()
	default:
		fmt.Fprintln(cmd.OutOrStdout(), "oneclick running. Press Ctrl-C to stop.")
		<-ctx.Done()
	}
	app.Bus.Wait()

	snapshot, err := app.Metrics.Snapshot()
	if err != nil {
		app.Logger.Warn("metrics snapshot failed", "error", err)
	}
	app.Logger.Info("oneclick stopped", "metrics", snapshot)

	if opts.Once || opts.Control {
		summary := summarize(app, snapshot, exitCode.Load())
		if err := formatter.Render(summary, func(w io.Writer) { writeSummary(w, summary) }); err != nil {
			return err
		}
	}

	if code := exitCode.Load(); code > 0 {
		return NewExitError(int(code), fmt.Sprintf("exit requested with code %d", code))
	}
	return nil
}

// startupArgv rebuilds the process argv the startup listener parses.
func startupArgv(opts *RunOptions, hasLaunch bool, extra []string) []string {
	argv := []string{"oneclick"}
	if opts.Auto {
		argv = append(argv, startup.AutoFlag)
	}
	if hasLaunch {
		argv = append(argv, startup.LaunchKey, strconv.FormatInt(opts.Launch, 10))
	}
	return append(argv, extra...)
}

func summarize(app *App, snapshot map[string]float64, exitCode int64) RunSummary {
	visible, _ := app.Window.IsVisible()
	summary := RunSummary{
		Visible: visible,
		Theme:   string(app.Window.Theme()),
		Tray:    menuTitles(app.Tray.Menu()),
		Metrics: snapshot,
	}
	if summary.Metrics == nil {
		summary.Metrics = map[string]float64{}
	}
	if exitCode >= 0 {
		code := int(exitCode)
		summary.ExitCode = &code
	}
	return summary
}

func menuTitles(menu platform.Menu) []string {
	titles := make([]string, 0, len(menu.Items))
	for _, item := range menu.Items {
		if item.Separator {
			titles = append(titles, "-")
			continue
		}
		titles = append(titles, item.Title)
	}
	return titles
}

func writeSummary(w io.Writer, s RunSummary) {
	state := "hidden"
	if s.Visible {
		state = "visible"
	}
	fmt.Fprintf(w, "Window: %s\n", state)
	fmt.Fprintln(w, "Tray:")
	for _, title := range s.Tray {
		fmt.Fprintf(w, "  %s\n", title)
	}
	if s.ExitCode != nil {
		fmt.Fprintf(w, "Exit requested: %d\n", *s.ExitCode)
	}
}
