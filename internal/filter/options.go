package filter

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/hupe1980/guardbrowse/internal/dataset"
)

// SplitTags splits a cell on commas and returns the trimmed, non-empty
// pieces in cell order.
func SplitTags(cell string) []string {
	if cell == "" {
		return nil
	}

	parts := strings.Split(cell, ",")
	tags := make([]string, 0, len(parts))

	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}

// Options returns the sorted distinct tags of column across all rows.
// It returns an empty slice when the table has no such column.
func Options(table *dataset.Table, column string) []string {
	if !table.HasColumn(column) {
		return []string{}
	}

	tags := sets.New[string]()
	for _, cell := range table.Values(column) {
		tags.Insert(SplitTags(cell)...)
	}

	return sets.List(tags)
}
