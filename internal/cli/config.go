package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/oneclick/internal/config"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Path     string   `json:"path,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
		Long: `Inspect and validate oneclick's configuration.

Configuration is built from the defaults, then the YAML file given with
--config, then ONECLICK_* environment variables, and is checked against
an embedded CUE schema.`,
	}

	cmd.AddCommand(
		newConfigShowCommand(rootOpts),
		newConfigValidateCommand(rootOpts),
	)
	return cmd
}

func newConfigShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)

			cfg, err := loadConfig(opts)
			if err != nil {
				return f.Fail("failed to load config", err)
			}
			if f.Format == "json" {
				return f.Success(cfg)
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to render config", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newConfigValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a config file without starting",
		Long: `Validate a YAML config file against the schema. Without an argument the
file given with --config is validated; environment overrides apply either
way.

Exit codes:
  0 - Configuration is valid
  2 - Configuration is invalid or unreadable`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.ConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigValidate(opts, path, cmd)
		},
	}
}

func runConfigValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	f.VerboseLog("Validating config %q", path)

	_, err := config.Load(path)
	if err == nil {
		return f.Render(ValidationResult{Valid: true, Path: path}, func(w io.Writer) {
			fmt.Fprintln(w, "✓ Configuration is valid")
		})
	}

	var vErr *config.ValidationError
	if !errors.As(err, &vErr) {
		return f.Fail("failed to load config", WrapExitError(ExitCommandError, "unreadable config", err))
	}

	result := ValidationResult{Valid: false, Path: path, Problems: vErr.Problems}
	if f.Format == "json" {
		if err := f.Error(ErrCodeConfig, fmt.Sprintf("%d problem(s) found", len(vErr.Problems)), result); err != nil {
			return err
		}
	} else {
		w := f.Writer
		fmt.Fprintf(w, "✗ Configuration is invalid (%d problem(s)):\n", len(vErr.Problems))
		for _, p := range vErr.Problems {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	}
	return WrapExitError(ExitCommandError, "invalid config", err)
}
