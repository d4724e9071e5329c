package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/oneclick/internal/model"
)

// ResourceResult is the payload of resource mutations.
type ResourceResult struct {
	IDs []int64 `json:"ids"`
}

// NewResourceCommand creates the resource command group.
func NewResourceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage the resources of a launcher",
	}

	cmd.AddCommand(
		newResourceAddCommand(rootOpts),
		newResourceRenameCommand(rootOpts),
		newResourceDeleteCommand(rootOpts),
	)
	return cmd
}

func newResourceAddCommand(opts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <launcher-id> <path>...",
		Short: "Add resources to a launcher",
		Long: `Add one or more files, folders, applications or URLs to a launcher.
All paths are added in one transaction. The display name is derived from
the path unless --name is given (only with a single path).`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			launcherID, err := parseID(args[0])
			if err != nil {
				return err
			}
			paths := args[1:]
			if name != "" && len(paths) > 1 {
				return NewExitError(ExitCommandError, "--name can only be used with a single path")
			}

			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				inputs := make([]model.ResourceInput, len(paths))
				for i, p := range paths {
					inputs[i] = model.ResourceInput{Name: name, Path: p}
				}
				ids, err := app.Commands.AddResources(ctx, launcherID, inputs)
				if err != nil {
					return f.Fail("failed to add resources", err)
				}
				return f.Render(ResourceResult{IDs: ids}, func(w io.Writer) {
					fmt.Fprintf(w, "Added %d resource(s) to launcher %d\n", len(ids), launcherID)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (defaults to one derived from the path)")
	return cmd
}

func newResourceRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rename <id> <name>",
		Short:         "Rename a resource",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				if err := app.Commands.RenameResource(ctx, id, args[1]); err != nil {
					return f.Fail("failed to rename resource", err)
				}
				return f.Render(ResourceResult{IDs: []int64{id}}, func(w io.Writer) {
					fmt.Fprintf(w, "Renamed resource %d\n", id)
				})
			})
		},
	}
}

func newResourceDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a resource",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				if err := app.Commands.DeleteResource(ctx, id); err != nil {
					return f.Fail("failed to delete resource", err)
				}
				return f.Render(ResourceResult{IDs: []int64{id}}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted resource %d\n", id)
				})
			})
		},
	}
}
