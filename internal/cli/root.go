// Package cli implements the cobra command tree for guardbrowse.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/guardbrowse/internal/config"
	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/logging"
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// usageError wraps err as an exit-code-2 error.
func usageError(err error) error {
	return &ExitError{Code: 2, Err: err}
}

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error:", exitErr.Err)
			}

			return exitErr.Code
		}

		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)

		return 1
	}

	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached. Without a subcommand it starts the browser.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	browseOpts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "guardbrowse",
		Short: "Browse and filter the guardrail validator catalog",
		Long: `guardbrowse is an interactive viewer for a spreadsheet of guardrail
validators. Validators are filtered by the tags of three comma-separated
columns: Use Cases, Risk Category and Content Type.

Within one column a validator matches when its cell contains any selected
tag; across columns all active filters must match. Leave a filter empty to
show everything.

Run without a subcommand to start the interactive browser.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return usageError(err)
			}

			logger := logging.Setup(cfg)

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.String("file", cfg.File),
				slog.String("match", cfg.Match),
				slog.String("configFile", cfg.ConfigFile),
			)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, browseOpts)
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .guardbrowse.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
	pf.String("file", dataset.DefaultFile, "validator spreadsheet (.xlsx, .xlsm or .csv)")
	pf.String("sheet", "", "workbook sheet to read (default: first sheet)")
	pf.String("match", "substring", "tag match mode: substring, token")
	pf.String("presets-file", "", "YAML file with named filter presets")

	registerBrowseFlags(cmd, browseOpts)

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.AddCommand(
		newBrowseCommand(),
		newListCommand(),
		newTagsCommand(),
		newDiffCommand(),
		newWatchCommand(),
		newMCPCommand(),
		newVersionCommand(),
		newCompletionCommand(),
	)

	return cmd
}
