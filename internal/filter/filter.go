package filter

import (
	"fmt"
	"strings"

	"github.com/hupe1980/guardbrowse/internal/dataset"
)

// MatchMode selects how a chosen tag is compared with a cell.
type MatchMode string

const (
	// MatchSubstring keeps a row when the raw cell text contains the tag.
	// A tag that is a substring of another tag matches both
	// ("Risk" matches "HighRisk").
	MatchSubstring MatchMode = "substring"

	// MatchToken keeps a row when one of the cell's trimmed comma-separated
	// tokens equals the tag.
	MatchToken MatchMode = "token"
)

// ParseMatchMode converts a string to a MatchMode. An empty string selects
// MatchSubstring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchToken:
		return MatchToken, nil
	default:
		return "", fmt.Errorf("invalid match mode %q: must be one of substring, token", s)
	}
}

// Filter decides whether a row is kept.
// Filters are stateless and never modify the row.
type Filter interface {
	Match(row dataset.Row) bool
}

// TagFilter keeps rows whose column matches at least one of its tags.
// A TagFilter without tags keeps every row.
type TagFilter struct {
	Column string
	Tags   []string
	Mode   MatchMode
}

// NewTagFilter creates a filter for column.
func NewTagFilter(column string, tags []string, mode MatchMode) *TagFilter {
	return &TagFilter{
		Column: column,
		Tags:   tags,
		Mode:   mode,
	}
}

// Match implements Filter.
func (f *TagFilter) Match(row dataset.Row) bool {
	if len(f.Tags) == 0 {
		return true
	}

	cell := row.Get(f.Column)

	if f.Mode == MatchToken {
		tokens := SplitTags(cell)
		for _, tag := range f.Tags {
			for _, tok := range tokens {
				if tok == tag {
					return true
				}
			}
		}

		return false
	}

	for _, tag := range f.Tags {
		if strings.Contains(cell, tag) {
			return true
		}
	}

	return false
}

// Chain is the conjunction of its filters: a row is kept only when every
// filter keeps it. An empty chain keeps every row.
type Chain struct {
	filters []Filter
}

// NewChain creates a chain from the given filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Match implements Filter.
func (c *Chain) Match(row dataset.Row) bool {
	for _, f := range c.filters {
		if !f.Match(row) {
			return false
		}
	}

	return true
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Result holds the outcome of applying a selection to a table.
type Result struct {
	// Table holds the kept rows in source order and source column order.
	Table *dataset.Table
	// Count is the number of kept rows.
	Count int
	// Selection is the selection that produced the result.
	Selection Selection
	// Mode is the match mode used.
	Mode MatchMode
}

// NoMatches reports the empty-result state. It is not an error.
func (r *Result) NoMatches() bool {
	return r.Count == 0
}

// Apply filters the full table by sel. It always starts from table itself,
// so the result depends only on (table, sel, mode).
func Apply(table *dataset.Table, sel Selection, mode MatchMode) *Result {
	out := table.Select(sel.Chain(mode).Match)

	return &Result{
		Table:     out,
		Count:     out.Len(),
		Selection: sel,
		Mode:      mode,
	}
}
