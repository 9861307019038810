package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/guardbrowse/internal/config"
	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/logging"
	"github.com/hupe1980/guardbrowse/internal/mcpserver"
	"github.com/hupe1980/guardbrowse/internal/version"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the validator catalog over the Model Context Protocol",
		Long: `MCP serves the catalog to MCP clients over stdio.

Tools:
  list_tags          sorted tags of a filter column
  filter_validators  validators matching comma-separated tags per column
  list_presets       configured filter presets

The spreadsheet is read on the first tool call and cached for the life of
the server. Logs go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			logger := logging.FromContext(ctx)

			presets, err := config.LoadPresets(cfg)
			if err != nil {
				return usageError(err)
			}

			loader := dataset.Default(cfg.File, cfg.Sheet, dataset.WithLogger(logger))

			srv := mcpserver.New(loader, mcpserver.Options{
				Mode:    cfg.MatchMode(),
				Presets: presets,
				Version: version.GetInfo().Version,
				Logger:  logger,
			})

			if err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return &ExitError{Code: 1, Err: err}
			}

			return nil
		},
	}
}
