package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hupe1980/guardbrowse/internal/config"
	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/filter"
	"github.com/hupe1980/guardbrowse/internal/logging"
)

// selectionOptions holds the tag filter flags shared by several commands.
type selectionOptions struct {
	useCases     []string
	risks        []string
	contentTypes []string
	preset       string
}

// registerSelectionFlags adds the tag filter flags to a cobra command.
func registerSelectionFlags(cmd *cobra.Command, opts *selectionOptions) {
	f := cmd.Flags()
	f.StringSliceVar(&opts.useCases, "use-case", nil, "Use Cases tags to match (repeatable, comma-separated)")
	f.StringSliceVar(&opts.risks, "risk", nil, "Risk Category tags to match (repeatable, comma-separated)")
	f.StringSliceVar(&opts.contentTypes, "content-type", nil, "Content Type tags to match (repeatable, comma-separated)")
	f.StringVar(&opts.preset, "preset", "", "start from a named filter preset")
}

// resolve builds the selection: the preset's tags (if any) plus the tags
// given on the command line.
func (o *selectionOptions) resolve(cfg *config.Config) (filter.Selection, error) {
	var sel filter.Selection

	if o.preset != "" {
		presets, err := config.LoadPresets(cfg)
		if err != nil {
			return filter.Selection{}, usageError(err)
		}

		sel, err = filter.ResolvePreset(o.preset, presets)
		if err != nil {
			return filter.Selection{}, usageError(err)
		}
	}

	var flags filter.Selection
	flags.Set(dataset.ColumnUseCases, o.useCases)
	flags.Set(dataset.ColumnRiskCategory, o.risks)
	flags.Set(dataset.ColumnContentType, o.contentTypes)

	return sel.Merge(flags), nil
}

// loadCatalog loads the configured spreadsheet through the process-wide
// loader. A failed load is logged and returned; callers show its notice.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) *dataset.Result {
	res := dataset.Default(cfg.File, cfg.Sheet, dataset.WithLogger(logger)).Load(ctx)
	if !res.OK() {
		logger.Warn("spreadsheet unavailable", slog.String("file", cfg.File), slog.String("error", res.Err.Error()))
	}

	return res
}

// writeNotice prints a load notice to w.
func writeNotice(w io.Writer, notice string) error {
	_, err := fmt.Fprintln(w, notice)
	return err
}

// programOptions routes the browser through the command's streams when they
// have been redirected.
func programOptions(cmd *cobra.Command) []tea.ProgramOption {
	var opts []tea.ProgramOption

	if in := cmd.InOrStdin(); in != os.Stdin {
		opts = append(opts, tea.WithInput(in))
	}

	if out := cmd.OutOrStdout(); out != os.Stdout {
		opts = append(opts, tea.WithOutput(out))
	}

	return opts
}

// browserLogger returns the logger handed to the browser: a file logger when
// logFile is set, otherwise a discarding logger.
func browserLogger(cfg *config.Config, logFile string) (*slog.Logger, func(), error) {
	if logFile == "" {
		return logging.Discard(), func() {}, nil
	}

	logger, closer, err := logging.OpenFile(cfg, logFile)
	if err != nil {
		return nil, nil, err
	}

	return logger, func() { _ = closer.Close() }, nil
}
