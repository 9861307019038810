package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/guardbrowse/internal/config"
	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/filter"
	"github.com/hupe1980/guardbrowse/internal/logging"
)

func newTagsCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tags <column>",
		Short: "Print the selectable tags of a filter column",
		Long: `Tags prints the sorted, distinct tags of one filter column: the options
offered by the browser's multi-select for that column.

Columns: use-cases, risk, content-type (or the spreadsheet column name).`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"use-cases", "risk", "content-type"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			col, ok := dataset.ResolveFilterColumn(args[0])
			if !ok {
				return usageError(fmt.Errorf("unknown column %q: must be one of use-cases, risk, content-type", args[0]))
			}

			res := loadCatalog(ctx, cfg, logging.FromContext(ctx))
			if !res.OK() {
				return writeNotice(cmd.ErrOrStderr(), res.Notice())
			}

			tags := filter.Options(res.Table, col)
			w := cmd.OutOrStdout()

			if jsonOutput {
				data, err := json.MarshalIndent(tags, "", "  ")
				if err != nil {
					return &ExitError{Code: 1, Err: fmt.Errorf("encoding tags: %w", err)}
				}

				_, err = fmt.Fprintln(w, string(data))

				return err
			}

			for _, tag := range tags {
				if _, err := fmt.Fprintln(w, tag); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output tags as a JSON array")

	return cmd
}
