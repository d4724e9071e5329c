package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/oneclick/internal/model"
)

// LauncherResult is the payload of launcher mutations.
type LauncherResult struct {
	ID int64 `json:"id"`
}

// NewLauncherCommand creates the launcher command group.
func NewLauncherCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launcher",
		Short: "Manage launchers",
		Long: `Create, rename, copy, delete, reorder, list and start launchers.

Every change is announced to the running listeners, so the tray menu is
rebuilt after each command.`,
	}

	cmd.AddCommand(
		newLauncherCreateCommand(rootOpts),
		newLauncherRenameCommand(rootOpts),
		newLauncherCopyCommand(rootOpts),
		newLauncherDeleteCommand(rootOpts),
		newLauncherSortCommand(rootOpts),
		newLauncherListCommand(rootOpts),
		newLauncherLaunchCommand(rootOpts),
	)
	return cmd
}

func newLauncherCreateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "create [name]",
		Short:         "Create a launcher (a default name is generated when omitted)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				id, err := app.Commands.CreateLauncher(ctx, name)
				if err != nil {
					return f.Fail("failed to create launcher", err)
				}
				return f.Render(LauncherResult{ID: id}, func(w io.Writer) {
					fmt.Fprintf(w, "Created launcher %d\n", id)
				})
			})
		},
	}
}

func newLauncherRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rename <id> <name>",
		Short:         "Rename a launcher",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				if err := app.Commands.RenameLauncher(ctx, id, args[1]); err != nil {
					return f.Fail("failed to rename launcher", err)
				}
				return f.Render(LauncherResult{ID: id}, func(w io.Writer) {
					fmt.Fprintf(w, "Renamed launcher %d\n", id)
				})
			})
		},
	}
}

func newLauncherCopyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "copy <id>",
		Short:         "Copy a launcher and all of its resources",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				newID, err := app.Commands.CopyLauncher(ctx, id)
				if err != nil {
					return f.Fail("failed to copy launcher", err)
				}
				return f.Render(LauncherResult{ID: newID}, func(w io.Writer) {
					fmt.Fprintf(w, "Copied launcher %d to %d\n", id, newID)
				})
			})
		},
	}
}

func newLauncherDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a launcher and its resources",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				if err := app.Commands.DeleteLauncher(ctx, id); err != nil {
					return f.Fail("failed to delete launcher", err)
				}
				return f.Render(LauncherResult{ID: id}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted launcher %d\n", id)
				})
			})
		},
	}
}

func newLauncherSortCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <id>=<sort>...",
		Short: "Reorder launchers",
		Long: `Assign sort keys to launchers in one transaction. Launchers are listed by
sort ascending; an unknown id rolls back the whole batch.

Example:
  oneclick launcher sort 3=1 1=2 2=3`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseSortUpdates(args)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				if err := app.Commands.ReorderLaunchers(ctx, updates); err != nil {
					return f.Fail("failed to reorder launchers", err)
				}
				return f.Render(updates, func(w io.Writer) {
					fmt.Fprintf(w, "Reordered %d launcher(s)\n", len(updates))
				})
			})
		},
	}
}

func newLauncherListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List launchers with their resources",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				views, err := app.Commands.QueryLaunchers(ctx)
				if err != nil {
					return f.Fail("failed to list launchers", err)
				}
				return f.Render(views, func(w io.Writer) { writeLaunchers(w, views) })
			})
		},
	}
}

func newLauncherLaunchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "launch <id>",
		Short:         "Open every resource of a launcher",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				if err := app.Commands.Launch(ctx, id); err != nil {
					return f.Fail("failed to launch", err)
				}
				return f.Render(LauncherResult{ID: id}, func(w io.Writer) {
					fmt.Fprintf(w, "Launched launcher %d\n", id)
				})
			})
		},
	}
}

func writeLaunchers(w io.Writer, views []model.LauncherView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No launchers.")
		return
	}
	for _, v := range views {
		fmt.Fprintf(w, "%d  %s  (sort %d)\n", v.ID, v.Name, v.Sort)
		for _, r := range v.Resources {
			fmt.Fprintf(w, "    %d  %s  %s\n", r.ID, r.Name, r.Path)
		}
	}
}

// parseID parses a positive entity id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q: must be a positive integer", arg))
	}
	return id, nil
}

// parseSortUpdates parses "<id>=<sort>" pairs.
func parseSortUpdates(args []string) ([]model.SortUpdate, error) {
	updates := make([]model.SortUpdate, 0, len(args))
	for _, arg := range args {
		idPart, sortPart, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid sort update %q: want <id>=<sort>", arg))
		}
		id, err := parseID(idPart)
		if err != nil {
			return nil, err
		}
		sort, err := strconv.ParseInt(sortPart, 10, 64)
		if err != nil {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid sort value %q", sortPart))
		}
		updates = append(updates, model.SortUpdate{ID: id, Sort: sort})
	}
	return updates, nil
}
