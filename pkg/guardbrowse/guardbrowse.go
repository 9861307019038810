// Package guardbrowse provides a public Go API for filtering a guardrail
// validator spreadsheet by tags.
//
// This package exposes the filtering used by the guardbrowse CLI as a
// library, allowing programmatic use without the terminal UI.
//
// Basic usage:
//
//	result, err := guardbrowse.Filter(ctx, "Organized_Guardrails_Validators.xlsx",
//	    guardbrowse.WithUseCases("RAG"),
//	    guardbrowse.WithRiskCategories("Safety", "Privacy"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Count)
//
// Rendering:
//
//	md, err := result.Render("markdown")
package guardbrowse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/filter"
	"github.com/hupe1980/guardbrowse/internal/output"
)

// ErrFileNotFound is returned when the spreadsheet does not exist.
var ErrFileNotFound = dataset.ErrFileNotFound

// Match modes.
const (
	MatchSubstring = string(filter.MatchSubstring)
	MatchToken     = string(filter.MatchToken)
)

// Option configures a Filter or Tags call.
// Use the With* functions to create Options.
type Option func(*options)

type options struct {
	sheet     string
	match     string
	selection filter.Selection
	logger    *slog.Logger
}

// WithSheet reads the named workbook sheet instead of the first one.
func WithSheet(name string) Option { return func(o *options) { o.sheet = name } }

// WithMatchMode sets the match mode: MatchSubstring (default) or MatchToken.
func WithMatchMode(mode string) Option { return func(o *options) { o.match = mode } }

// WithLogger sets the logger used while reading the spreadsheet.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithUseCases adds Use Cases tags.
func WithUseCases(tags ...string) Option {
	return func(o *options) { o.add(dataset.ColumnUseCases, tags) }
}

// WithRiskCategories adds Risk Category tags.
func WithRiskCategories(tags ...string) Option {
	return func(o *options) { o.add(dataset.ColumnRiskCategory, tags) }
}

// WithContentTypes adds Content Type tags.
func WithContentTypes(tags ...string) Option {
	return func(o *options) { o.add(dataset.ColumnContentType, tags) }
}

func (o *options) add(column string, tags []string) {
	var extra filter.Selection
	extra.Set(column, tags)
	o.selection = o.selection.Merge(extra)
}

// Result is the outcome of a Filter call.
type Result struct {
	// Count is the number of matching validators.
	Count int
	// Total is the number of validators in the spreadsheet.
	Total int
	// Columns lists the spreadsheet columns in source order.
	Columns []string
	// Rows holds the matching validators in source order.
	Rows []map[string]string

	res *filter.Result
}

// NoMatches reports whether the filters left no validators.
func (r *Result) NoMatches() bool {
	return r.Count == 0
}

// Render formats the result: table, markdown, csv, json, yaml or html.
func (r *Result) Render(format string) ([]byte, error) {
	f, err := output.NewFormatter(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, r.res); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", format, err)
	}

	return buf.Bytes(), nil
}

// Filter reads the spreadsheet at path and returns the validators matching
// the given tags. Within one column any tag may match; across columns all
// given columns must match.
func Filter(ctx context.Context, path string, opts ...Option) (*Result, error) {
	o, mode, err := build(opts)
	if err != nil {
		return nil, err
	}

	table, err := load(ctx, path, o)
	if err != nil {
		return nil, err
	}

	res := filter.Apply(table, o.selection, mode)
	doc := output.NewDocument(res)

	return &Result{
		Count:   res.Count,
		Total:   table.Len(),
		Columns: doc.Columns,
		Rows:    doc.Rows,
		res:     res,
	}, nil
}

// Tags returns the sorted distinct tags of a filter column. column accepts
// the column name or an alias: use-cases, risk, content-type.
func Tags(ctx context.Context, path, column string, opts ...Option) ([]string, error) {
	col, ok := dataset.ResolveFilterColumn(column)
	if !ok {
		return nil, fmt.Errorf("unknown column %q: must be one of use-cases, risk, content-type", column)
	}

	o, _, err := build(opts)
	if err != nil {
		return nil, err
	}

	table, err := load(ctx, path, o)
	if err != nil {
		return nil, err
	}

	return filter.Options(table, col), nil
}

func build(opts []Option) (*options, filter.MatchMode, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	mode, err := filter.ParseMatchMode(o.match)
	if err != nil {
		return nil, "", err
	}

	return o, mode, nil
}

func load(ctx context.Context, path string, o *options) (*dataset.Table, error) {
	if path == "" {
		return nil, errors.New("spreadsheet path is required")
	}

	res := dataset.NewLoader(path, dataset.WithSheet(o.sheet), dataset.WithLogger(o.logger)).Load(ctx)
	if res.Err != nil {
		return nil, fmt.Errorf("loading spreadsheet: %w", res.Err)
	}

	return res.Table, nil
}
