package filter

import (
	"strings"

	"github.com/hupe1980/guardbrowse/internal/dataset"
)

// Selection holds the chosen tags of the three filter columns. An empty
// list leaves its column unfiltered.
type Selection struct {
	UseCases       []string `json:"useCases,omitempty" yaml:"use-cases,omitempty"`
	RiskCategories []string `json:"riskCategories,omitempty" yaml:"risk-categories,omitempty"`
	ContentTypes   []string `json:"contentTypes,omitempty" yaml:"content-types,omitempty"`
}

// Tags returns the chosen tags for column.
func (s Selection) Tags(column string) []string {
	switch column {
	case dataset.ColumnUseCases:
		return s.UseCases
	case dataset.ColumnRiskCategory:
		return s.RiskCategories
	case dataset.ColumnContentType:
		return s.ContentTypes
	default:
		return nil
	}
}

// Set replaces the chosen tags for column. Tags are trimmed and empty ones
// dropped; unknown columns are ignored.
func (s *Selection) Set(column string, tags []string) {
	clean := normalizeTags(tags)

	switch column {
	case dataset.ColumnUseCases:
		s.UseCases = clean
	case dataset.ColumnRiskCategory:
		s.RiskCategories = clean
	case dataset.ColumnContentType:
		s.ContentTypes = clean
	}
}

// IsEmpty reports whether no filter is active.
func (s Selection) IsEmpty() bool {
	return len(s.ActiveColumns()) == 0
}

// ActiveColumns returns the filter columns with a non-empty selection.
func (s Selection) ActiveColumns() []string {
	var active []string

	for _, col := range dataset.FilterColumns {
		if len(s.Tags(col)) > 0 {
			active = append(active, col)
		}
	}

	return active
}

// Merge returns the union of s and other, per column, keeping first-seen order.
func (s Selection) Merge(other Selection) Selection {
	var merged Selection

	for _, col := range dataset.FilterColumns {
		merged.Set(col, append(append([]string{}, s.Tags(col)...), other.Tags(col)...))
	}

	return merged
}

// Chain builds the conjunction of the active column filters.
func (s Selection) Chain(mode MatchMode) *Chain {
	var filters []Filter

	for _, col := range s.ActiveColumns() {
		filters = append(filters, NewTagFilter(col, s.Tags(col), mode))
	}

	return NewChain(filters...)
}

func normalizeTags(tags []string) []string {
	var out []string

	seen := make(map[string]struct{}, len(tags))

	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		if _, dup := seen[t]; dup {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}
