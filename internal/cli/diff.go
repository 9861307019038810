package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/guardbrowse/internal/config"
	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/diff"
	"github.com/hupe1980/guardbrowse/internal/filter"
	"github.com/hupe1980/guardbrowse/internal/logging"
	"github.com/hupe1980/guardbrowse/internal/watch"
)

// errDifferences is returned with --exit-code when the listings differ.
var errDifferences = errors.New("listings differ")

type diffOptions struct {
	selectionOptions

	context  int
	exitCode bool
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare the filtered validators of two spreadsheets",
		Long: `Diff filters two spreadsheets with the same tags and prints a unified
diff of the resulting validator listings, followed by a per-validator
summary (added, removed, modified).

Exit codes:
  0  Success (with --exit-code: no differences)
  1  Error, or differences found with --exit-code
  2  Invalid arguments`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1], opts)
		},
	}

	registerSelectionFlags(cmd, &opts.selectionOptions)

	f := cmd.Flags()
	f.IntVar(&opts.context, "context", 3, "lines of context around each change")
	f.BoolVar(&opts.exitCode, "exit-code", false, "exit with 1 when the listings differ")

	return cmd
}

func runDiff(cmd *cobra.Command, oldPath, newPath string, opts *diffOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	sel, err := opts.resolve(cfg)
	if err != nil {
		return err
	}

	if opts.context < 0 {
		return usageError(fmt.Errorf("--context must not be negative"))
	}

	tables := make([]*dataset.Table, 0, 2)

	for _, path := range []string{oldPath, newPath} {
		res := dataset.NewLoader(path, dataset.WithSheet(cfg.Sheet), dataset.WithLogger(logger)).Load(ctx)
		if !res.OK() {
			return writeNotice(cmd.ErrOrStderr(), res.Notice())
		}

		tables = append(tables, filter.Apply(res.Table, sel, cfg.MatchMode()).Table)
	}

	diffOpts := diff.DefaultOptions()
	diffOpts.OldLabel = oldPath
	diffOpts.NewLabel = newPath
	diffOpts.Context = opts.context

	result, err := diff.Compute(diff.Listing(tables[0]), diff.Listing(tables[1]), diffOpts)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("computing diff: %w", err)}
	}

	w := cmd.OutOrStdout()
	diff.Write(w, result, !cfg.NoColor)

	if result.HasDifferences {
		_, _ = fmt.Fprintf(w, "\nSummary: %s (%d hunk(s))\n",
			watch.RowDiffSummary(watch.RowDiff(tables[0], tables[1])), len(result.Hunks))
	}

	if opts.exitCode && result.HasDifferences {
		return &ExitError{Code: 1, Err: errDifferences}
	}

	return nil
}
