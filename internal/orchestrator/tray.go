package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/oneclick/internal/model"
	"github.com/roach88/oneclick/internal/platform"
)

// Tray menu item ids.
const (
	MenuQuit         = "quit"
	MenuLaunchPrefix = "launch_"
)

// BuildMenu renders the tray menu from the current launcher list: one
// launch item per launcher in list order, a separator when there is at
// least one launcher, then quit.
func (o *Orchestrator) BuildMenu(ctx context.Context) (platform.Menu, error) {
	launchers, err := o.store.ListLaunchers(ctx)
	if err != nil {
		return platform.Menu{}, err
	}

	items := make([]platform.MenuItem, 0, len(launchers)+2)
	for _, l := range launchers {
		items = append(items, platform.MenuItem{
			ID:    MenuLaunchPrefix + strconv.FormatInt(l.ID, 10),
			Title: "Launch: " + l.Name,
		})
	}
	if len(launchers) > 0 {
		items = append(items, platform.MenuItem{Separator: true})
	}
	items = append(items, platform.MenuItem{ID: MenuQuit, Title: "Quit"})

	return platform.Menu{Items: items}, nil
}

// RefreshTray rebuilds the tray menu and installs it.
func (o *Orchestrator) RefreshTray(ctx context.Context) error {
	menu, err := o.BuildMenu(ctx)
	if err != nil {
		return err
	}
	if err := o.shell.Tray.SetMenu(menu); err != nil {
		return model.ExternalError("set tray menu", err)
	}
	o.logger.Debug("tray refreshed", "items", len(menu.Items))
	return nil
}

// HandleMenuEvent dispatches a tray menu click. Launches run detached.
func (o *Orchestrator) HandleMenuEvent(ctx context.Context, id string) {
	switch {
	case id == MenuQuit:
		o.logger.Info("quit requested from tray")
		o.shell.Process.Exit(0)
	case strings.HasPrefix(id, MenuLaunchPrefix):
		launcherID, err := strconv.ParseInt(strings.TrimPrefix(id, MenuLaunchPrefix), 10, 64)
		if err != nil {
			o.logger.Warn("malformed menu id", "menu_id", id, "error", err)
			return
		}
		o.bus.Go(ctx, "tray-launch", func(ctx context.Context) error {
			if err := o.Launch(ctx, launcherID); err != nil {
				return fmt.Errorf("tray launch %d: %w", launcherID, err)
			}
			return nil
		})
	default:
		o.logger.Warn("unknown menu item", "menu_id", id)
	}
}
