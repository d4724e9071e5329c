package orchestrator

import (
	"context"
	"slices"
	"time"

	"github.com/roach88/oneclick/internal/debounce"
	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/model"
)

// HandleTrayClick restores the window.
func (o *Orchestrator) HandleTrayClick() {
	if err := o.shell.Window.Unminimize(); err != nil {
		o.logger.Warn("unminimize window failed", "error", err)
	}
	if err := o.shell.Window.Show(); err != nil {
		o.logger.Warn("show window failed", "error", err)
	}
	if err := o.shell.Window.Focus(); err != nil {
		o.logger.Warn("focus window failed", "error", err)
	}
}

// HandleCloseRequested hides the window, then exits when close_main_panel
// asks for it.
func (o *Orchestrator) HandleCloseRequested(ctx context.Context) {
	if err := o.shell.Window.Hide(); err != nil {
		o.logger.Warn("hide window failed", "error", err)
	}

	setting, ok, err := o.store.ReadSetting(ctx, model.SettingCloseMainPanel)
	if err != nil {
		o.logger.Warn("read setting failed", "key", model.SettingCloseMainPanel, "error", err)
		return
	}
	if ok && setting.Value == model.CloseMainPanelExit {
		o.logger.Info("exiting on close")
		o.shell.Process.Exit(0)
	}
}

// HandleScaleChanged resets the window to its minimum size after a display
// scale change. Resets are debounced; a notification that arrives while
// another is being checked is dropped.
func (o *Orchestrator) HandleScaleChanged(now time.Time) debounce.Outcome {
	outcome := o.scaleGate.Try(now, func() bool {
		size, err := o.shell.Window.InnerSize()
		if err != nil {
			o.logger.Warn("read window size failed", "error", err)
			return false
		}
		if size == o.minSize {
			return false
		}
		if err := o.shell.Window.SetSize(o.minSize); err != nil {
			o.logger.Warn("reset window size failed", "error", err)
		}
		o.logger.Debug("window size reset after scale change",
			"width", size.Width,
			"height", size.Height,
		)
		return true
	})
	if outcome != debounce.Ran {
		o.logger.Debug("scale change ignored", "outcome", outcome.String())
	}
	return outcome
}

// HandleDragDrop focuses the window and announces dropped paths. An empty
// drop is ignored.
func (o *Orchestrator) HandleDragDrop(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	if err := o.shell.Window.Focus(); err != nil {
		o.logger.Warn("focus window failed", "error", err)
	}
	o.bus.Publish(ctx, event.ResourceDragDrop{Paths: slices.Clone(paths)})
}
