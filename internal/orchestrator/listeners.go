package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/model"
	"github.com/roach88/oneclick/internal/platform"
	"github.com/roach88/oneclick/internal/startup"
)

func (o *Orchestrator) onStartupComplete(ctx context.Context, e event.ApplicationStartupComplete) error {
	args := startup.ParseArgs(e.Args)
	o.logger.Debug("startup sequence", "auto", args.Auto, "launch_id", args.LaunchID, "has_launch", args.HasLaunch)

	o.applyStartupVisibility(ctx, args.Auto)

	if err := o.RefreshTray(ctx); err != nil {
		o.logger.Error("refresh tray failed", "error", err)
	}

	if args.Auto {
		if err := o.launchAutoStart(ctx); err != nil {
			o.logger.Error("autostart launch failed", "error", err)
		}
	}

	if args.HasLaunch {
		if err := o.Launch(ctx, args.LaunchID); err != nil {
			o.logger.Error("launch failed", "launcher_id", args.LaunchID, "error", err)
		}
	}
	return nil
}

// applyStartupVisibility shows the window, unless this is an autostart and
// hide_after_auto_start is enabled.
func (o *Orchestrator) applyStartupVisibility(ctx context.Context, auto bool) {
	if auto && o.settingEnabled(ctx, model.SettingHideAfterAutoStart) {
		if err := o.shell.Window.Hide(); err != nil {
			o.logger.Warn("hide window failed", "error", err)
		}
		return
	}
	if err := o.shell.Window.Show(); err != nil {
		o.logger.Warn("show window failed", "error", err)
	}
}

// launchAutoStart opens the resources of every launcher listed in
// auto_start_launcher_ids. A missing or malformed value means no launchers.
func (o *Orchestrator) launchAutoStart(ctx context.Context) error {
	setting, ok, err := o.store.ReadSetting(ctx, model.SettingAutoStartLauncherIDs)
	if err != nil {
		return err
	}
	if !ok {
		o.logger.Debug("no autostart launchers configured")
		return nil
	}

	var ids []int64
	if err := json.Unmarshal([]byte(setting.Value), &ids); err != nil {
		o.logger.Warn("autostart launcher ids malformed",
			"value", setting.Value,
			"error", model.SerializationError("parse autostart launcher ids", err),
		)
		return nil
	}

	resources, err := o.store.ListResourcesForLaunchers(ctx, ids)
	if err != nil {
		return err
	}
	if len(resources) == 0 {
		o.logger.Debug("autostart launchers have no resources", "launcher_ids", ids)
		return nil
	}

	o.openAll(ctx, resources)
	for range ids {
		o.recorder.LauncherStarted()
	}
	o.bus.Publish(ctx, event.LauncherLaunched{LauncherIDs: ids})
	return nil
}

func (o *Orchestrator) onLauncherLaunched(ctx context.Context, e event.LauncherLaunched) error {
	if len(e.LauncherIDs) == 1 {
		if err := o.shell.Window.Hide(); err != nil {
			o.logger.Warn("hide window failed", "error", err)
		}
	} else {
		o.logger.Debug("window kept visible", "launchers", len(e.LauncherIDs))
	}

	if o.settingEnabled(ctx, model.SettingLaunchThenExit) {
		o.logger.Info("exiting after launch")
		o.shell.Process.Exit(0)
	}
	return nil
}

func (o *Orchestrator) onBasicInfoUpdated(ctx context.Context, _ event.LauncherBasicInfoUpdated) error {
	return o.RefreshTray(ctx)
}

func (o *Orchestrator) onSettingUpdated(_ context.Context, e event.SettingUpdated) error {
	if e.Key != model.SettingTheme {
		return nil
	}
	theme := platform.ParseTheme(e.Value)
	if err := o.shell.Window.SetTheme(theme); err != nil {
		return model.ExternalError("set theme", fmt.Errorf("theme %q: %w", e.Value, err))
	}
	o.logger.Debug("theme changed", "theme", e.Value)
	return nil
}
