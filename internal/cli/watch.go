package cli

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/guardbrowse/internal/config"
	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/filter"
	"github.com/hupe1980/guardbrowse/internal/logging"
	"github.com/hupe1980/guardbrowse/internal/output"
	"github.com/hupe1980/guardbrowse/internal/watch"
)

type watchOptions struct {
	listOptions

	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run list whenever the spreadsheet changes",
		Long: `Watch monitors the spreadsheet and re-runs the list command each time it
is saved. Every run reloads the file from scratch.

File events are debounced so a burst of writes triggers one run. Each run
prints a status line with the match count and the validators that were
added, removed or modified since the previous run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts)
		},
	}

	registerSelectionFlags(cmd, &opts.selectionOptions)

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "table", "output format: "+output.DefaultRegistry().AvailableFormats())
	f.StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	f.DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	formatter, err := output.NewFormatter(opts.format)
	if err != nil {
		return usageError(err)
	}

	sel, err := opts.resolve(cfg)
	if err != nil {
		return err
	}

	w := output.NewWriter(opts.output, cmd.OutOrStdout(), logger)

	var prev *dataset.Table

	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		// A fresh loader per run: the file has changed since the last one.
		res := dataset.NewLoader(cfg.File, dataset.WithSheet(cfg.Sheet), dataset.WithLogger(logger)).Load(fnCtx)
		if !res.OK() {
			prev = nil
			return &watch.RunResult{Notice: res.Notice()}, nil
		}

		result := filter.Apply(res.Table, sel, cfg.MatchMode())

		var buf bytes.Buffer
		if err := formatter.Format(&buf, result); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", opts.format, err)
		}

		if err := w.Write(buf.Bytes()); err != nil {
			return nil, err
		}

		var changes []watch.RowChange
		if prev != nil {
			changes = watch.RowDiff(prev, result.Table)
		}

		prev = result.Table

		return &watch.RunResult{
			Count:   result.Count,
			Total:   res.Table.Len(),
			Changes: changes,
		}, nil
	}

	watchOpts := watch.DefaultOptions()
	watchOpts.File = cfg.File
	watchOpts.Debounce = opts.debounce
	watchOpts.Logger = logger
	watchOpts.Out = cmd.ErrOrStderr()

	if err := watch.Run(ctx, watchOpts, runFn); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	return nil
}
