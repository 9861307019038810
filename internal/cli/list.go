package cli

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/guardbrowse/internal/config"
	"github.com/hupe1980/guardbrowse/internal/filter"
	"github.com/hupe1980/guardbrowse/internal/logging"
	"github.com/hupe1980/guardbrowse/internal/output"
)

type listOptions struct {
	selectionOptions

	format string
	output string
}

func newListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the validators matching the given tags",
		Long: `List applies the tag filters once and prints the matching validators.

Within one column a validator matches when its cell contains any of the
given tags; across columns every filter given must match. Without filters
every validator is printed.

Formats: table (default), markdown, csv, json, yaml, html.

A missing or unreadable spreadsheet is reported in place of the table and
is not an error.`,
		Example: `  guardbrowse list --use-case RAG --risk Safety,Privacy
  guardbrowse list --preset rag --format json -o rag.json
  guardbrowse list --risk Risk --match token`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	registerSelectionFlags(cmd, &opts.selectionOptions)

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "table", "output format: "+output.DefaultRegistry().AvailableFormats())
	f.StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions) error {
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

	res := loadCatalog(ctx, cfg, logger)

	var buf bytes.Buffer

	if !res.OK() {
		if err := formatter.FormatNotice(&buf, res.Notice()); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("rendering notice: %w", err)}
		}
	} else {
		result := filter.Apply(res.Table, sel, cfg.MatchMode())

		logger.Debug("filters applied",
			slog.Int("count", result.Count),
			slog.Int("total", res.Table.Len()),
			slog.String("format", opts.format),
		)

		if err := formatter.Format(&buf, result); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("rendering %s: %w", opts.format, err)}
		}
	}

	w := output.NewWriter(opts.output, cmd.OutOrStdout(), logger)
	if err := w.Write(buf.Bytes()); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	return nil
}
