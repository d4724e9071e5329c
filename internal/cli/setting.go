package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/oneclick/internal/model"
)

// NewSettingCommand creates the setting command group.
func NewSettingCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Read and write settings",
		Long: `Read and write persisted settings.

Recognized keys:
  theme                    light, dark or system
  close_main_panel         m2 exits on close; anything else hides the window
  auto_start_launcher_ids  JSON array of launcher ids started on autostart
  hide_after_auto_start    true hides the window after an autostart
  launch_then_exit         true exits after a single launcher is started`,
	}

	cmd.AddCommand(
		newSettingGetCommand(rootOpts),
		newSettingSetCommand(rootOpts),
		newSettingListCommand(rootOpts),
	)
	return cmd
}

func newSettingGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <key>",
		Short:         "Print one setting",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				setting, ok, err := app.Commands.ReadSetting(ctx, key)
				if err != nil {
					return f.Fail("failed to read setting", err)
				}
				if !ok {
					return f.Fail("failed to read setting", model.NotFoundError("read setting", "setting %q is not set", key))
				}
				return f.Render(setting, func(w io.Writer) {
					fmt.Fprintln(w, setting.Value)
				})
			})
		},
	}
}

func newSettingSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set <key> <value>",
		Short:         "Save a setting",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setting := model.Setting{Key: args[0], Value: args[1]}
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				if err := app.Commands.SaveSetting(ctx, setting.Key, setting.Value); err != nil {
					return f.Fail("failed to save setting", err)
				}
				return f.Render(setting, func(w io.Writer) {
					fmt.Fprintf(w, "%s = %s\n", setting.Key, setting.Value)
				})
			})
		},
	}
}

func newSettingListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "Print every setting",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *App, f *OutputFormatter) error {
				settings, err := app.Commands.ReadAllSettings(ctx)
				if err != nil {
					return f.Fail("failed to list settings", err)
				}
				return f.Render(settings, func(w io.Writer) {
					if len(settings) == 0 {
						fmt.Fprintln(w, "No settings.")
						return
					}
					for _, s := range settings {
						fmt.Fprintf(w, "%s = %s\n", s.Key, s.Value)
					}
				})
			})
		},
	}
}
