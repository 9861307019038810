package watch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/guardbrowse/internal/dataset"
)

// Change kinds.
const (
	ChangeAdded    = "added"
	ChangeRemoved  = "removed"
	ChangeModified = "modified"
)

// RowChange describes a validator that differs between two runs.
type RowChange struct {
	// Kind is one of ChangeAdded, ChangeRemoved or ChangeModified.
	Kind string
	// Name is the validator name.
	Name string
	// Columns lists the modified columns for ChangeModified.
	Columns []string
}

// RowDiff compares two tables by validator name. Rows without a name are
// keyed by their position.
func RowDiff(prev, curr *dataset.Table) []RowChange {
	prevRows := keyRows(prev)
	currRows := keyRows(curr)

	var changes []RowChange

	for name := range prevRows {
		if _, ok := currRows[name]; !ok {
			changes = append(changes, RowChange{Kind: ChangeRemoved, Name: name})
		}
	}

	cols := mergeColumns(prev.Columns(), curr.Columns())

	for name, cr := range currRows {
		pr, existed := prevRows[name]
		if !existed {
			changes = append(changes, RowChange{Kind: ChangeAdded, Name: name})
			continue
		}

		var modified []string

		for _, c := range cols {
			if pr.Get(c) != cr.Get(c) {
				modified = append(modified, c)
			}
		}

		if len(modified) > 0 {
			changes = append(changes, RowChange{Kind: ChangeModified, Name: name, Columns: modified})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Kind != changes[j].Kind {
			return changes[i].Kind < changes[j].Kind
		}

		return changes[i].Name < changes[j].Name
	})

	return changes
}

// RowDiffSummary returns a human-readable one-line summary.
func RowDiffSummary(changes []RowChange) string {
	var added, removed, modified int

	for _, c := range changes {
		switch c.Kind {
		case ChangeAdded:
			added++
		case ChangeRemoved:
			removed++
		case ChangeModified:
			modified++
		}
	}

	if added == 0 && removed == 0 && modified == 0 {
		return "no validator changes"
	}

	parts := make([]string, 0, 3)

	if added > 0 {
		parts = append(parts, fmt.Sprintf("+%d validator(s) added", added))
	}

	if removed > 0 {
		parts = append(parts, fmt.Sprintf("-%d validator(s) removed", removed))
	}

	if modified > 0 {
		parts = append(parts, fmt.Sprintf("~%d validator(s) modified", modified))
	}

	return strings.Join(parts, ", ")
}

func keyRows(t *dataset.Table) map[string]dataset.Row {
	rows := make(map[string]dataset.Row, t.Len())

	for i, r := range t.Rows() {
		key := r.Get(dataset.ColumnName)
		if key == "" {
			key = fmt.Sprintf("#%d", i+1)
		}

		rows[key] = r
	}

	return rows
}

func mergeColumns(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))

	var out []string

	for _, c := range append(append([]string{}, a...), b...) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	return out
}
