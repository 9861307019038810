package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc is called for the initial run and after every debounced change.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult holds the outcome of one run.
type RunResult struct {
	// Count is the number of validators left by the filters.
	Count int
	// Total is the number of validators in the spreadsheet.
	Total int
	// Changes lists the validators that differ from the previous run.
	Changes []RowChange
	// Notice is set when the spreadsheet could not be loaded.
	Notice string
}

// Options configures the watch behaviour.
type Options struct {
	// File is the spreadsheet to watch.
	File string

	// Debounce is the quiet period before a run.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out receives the status lines.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run watches opts.File and blocks until ctx is cancelled or SIGINT/SIGTERM
// is received. The parent directory is watched rather than the file, so
// editors that replace the file on save are still seen.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	abs, err := filepath.Abs(opts.File)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", opts.File, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching spreadsheet directory: %w", err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", opts.File, opts.Debounce)

	doRun(sigCtx, opts, runFn, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func(trigger string) {
		doRun(sigCtx, opts, runFn, trigger)
	})
	defer debouncer.Stop()

	name := filepath.Base(abs)

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event, name) {
				continue
			}

			opts.Logger.Debug("spreadsheet event", slog.String("op", event.Op.String()), slog.String("path", event.Name))
			debouncer.Trigger(filepath.Base(event.Name))

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single run and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	if result.Notice != "" {
		fmt.Fprintf(opts.Out, "[%s] %s → %s\n", now, trigger, result.Notice)
		return
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d of %d validators)\n", now, trigger, result.Count, result.Total)

	if len(result.Changes) > 0 {
		fmt.Fprintf(opts.Out, "  changes: %s\n", RowDiffSummary(result.Changes))
	}
}

// isRelevant keeps write, create, remove and rename events on the watched
// file and drops everything else in the directory (lock files, editor
// backups, other spreadsheets).
func isRelevant(event fsnotify.Event, name string) bool {
	if event.Op == 0 {
		return false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return filepath.Base(event.Name) == name
}
