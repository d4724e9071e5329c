package orchestrator

import (
	"context"

	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/model"
)

// Launch opens every resource of a launcher and publishes
// launcher:launched. An unknown launcher is a NotFound error. A resource
// that fails to open is logged and counted; it does not stop the others.
func (o *Orchestrator) Launch(ctx context.Context, id int64) error {
	launcher, err := o.store.FindLauncher(ctx, id)
	if err != nil {
		return err
	}

	resources, err := o.store.ListResourcesForLauncher(ctx, id)
	if err != nil {
		return err
	}

	o.logger.Info("launching", "launcher_id", id, "name", launcher.Name, "resources", len(resources))
	o.openAll(ctx, resources)
	o.recorder.LauncherStarted()

	o.bus.Publish(ctx, event.LauncherLaunched{LauncherIDs: []int64{id}})
	return nil
}

func (o *Orchestrator) openAll(ctx context.Context, resources []model.Resource) {
	for _, r := range resources {
		err := o.shell.Opener.Open(ctx, r.Path)
		o.recorder.ResourceOpened(err)
		if err != nil {
			o.logger.Warn("open resource failed",
				"resource_id", r.ID,
				"launcher_id", r.LauncherID,
				"path", r.Path,
				"error", model.ExternalError("open resource", err),
			)
		}
	}
}
