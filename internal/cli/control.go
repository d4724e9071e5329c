package cli

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"
)

// runControl executes control commands read from r, one per line, until
// EOF or ctx is done. Blank lines and lines starting with # are skipped.
// The bus is drained after every command so effects land in input order.
func runControl(ctx context.Context, app *App, r io.Reader, exit func(code int)) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := dispatchControl(ctx, app, fields[0], fields[1:], exit); err != nil {
			app.Logger.Warn("control command failed", "command", line, "error", err)
		}
		app.Bus.Wait()
	}
	if err := scanner.Err(); err != nil {
		app.Logger.Warn("reading control commands failed", "error", err)
	}
}

func dispatchControl(ctx context.Context, app *App, name string, args []string, exit func(code int)) error {
	orch := app.Orchestrator

	switch name {
	case "launch":
		if len(args) != 1 {
			return NewExitError(ExitCommandError, "usage: launch <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid launcher id", err)
		}
		return app.Commands.Launch(ctx, id)
	case "menu":
		if len(args) != 1 {
			return NewExitError(ExitCommandError, "usage: menu <item-id>")
		}
		orch.HandleMenuEvent(ctx, args[0])
	case "tray-click":
		orch.HandleTrayClick()
	case "close":
		orch.HandleCloseRequested(ctx)
	case "scale":
		orch.HandleScaleChanged(time.Now())
	case "drop":
		orch.HandleDragDrop(ctx, args)
	case "redirect":
		app.Sequencer.Redirect(ctx, append([]string{"oneclick"}, args...))
	case "quit":
		exit(0)
	default:
		return NewExitError(ExitCommandError, "unknown control command "+strconv.Quote(name))
	}
	return nil
}
