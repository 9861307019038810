package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/guardbrowse/internal/config"
	"github.com/hupe1980/guardbrowse/internal/logging"
	"github.com/hupe1980/guardbrowse/internal/tui"
)

type browseOptions struct {
	selectionOptions

	logFile string
}

func registerBrowseFlags(cmd *cobra.Command, opts *browseOptions) {
	registerSelectionFlags(cmd, &opts.selectionOptions)
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write browser logs to this file")
}

func newBrowseCommand() *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse validators interactively (default command)",
		Long: `Browse opens the interactive validator browser.

The sidebar holds one multi-select per tag column. Selected tags narrow
the table on the right immediately.

Keys:
  tab / shift+tab   switch between filters and the table
  up / down (k/j)   move
  space / enter     toggle the tag under the cursor
  c                 clear the focused filter
  C                 clear all filters
  q / ctrl+c        quit

The browser owns the terminal; use --log-file to capture logs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, opts)
		},
	}

	registerBrowseFlags(cmd, opts)

	return cmd
}

func runBrowse(cmd *cobra.Command, opts *browseOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	sel, err := opts.resolve(cfg)
	if err != nil {
		return err
	}

	tuiLogger, closeLog, err := browserLogger(cfg, opts.logFile)
	if err != nil {
		return usageError(err)
	}
	defer closeLog()

	res := loadCatalog(ctx, cfg, tuiLogger)

	logging.FromContext(ctx).Debug("starting browser",
		slog.Int("rows", res.Table.Len()),
		slog.Bool("loaded", res.OK()),
	)

	err = tui.Run(ctx, tui.Options{
		Result:    res,
		Selection: sel,
		Mode:      cfg.MatchMode(),
		NoColor:   cfg.NoColor,
		Logger:    tuiLogger,
	}, programOptions(cmd)...)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	return nil
}
