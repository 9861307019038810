package output

import (
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/guardbrowse/internal/dataset"
)

// Width is a display width hint for a column.
type Width int

// Width hints.
const (
	WidthDefault Width = iota
	WidthMedium
	WidthLarge
)

// Cells returns the number of terminal cells a column of this width gets.
func (w Width) Cells() int {
	switch w {
	case WidthMedium:
		return 24
	case WidthLarge:
		return 56
	default:
		return 18
	}
}

// ColumnSpec describes how a column is displayed.
type ColumnSpec struct {
	Label string
	Width Width
}

var columnSpecs = map[string]ColumnSpec{
	dataset.ColumnName:           {Label: "Validator", Width: WidthMedium},
	dataset.ColumnDescription:    {Label: "Description", Width: WidthLarge},
	dataset.ColumnUseCases:       {Label: "Application Scenarios"},
	dataset.ColumnRiskCategory:   {Label: "Risk Category"},
	dataset.ColumnContentType:    {Label: "Content Type"},
	dataset.ColumnInfrastructure: {Label: "Infrastructure"},
}

// Spec returns the display spec of column. Unknown columns are labeled
// with their own name and get the default width.
func Spec(column string) ColumnSpec {
	if s, ok := columnSpecs[column]; ok {
		return s
	}

	return ColumnSpec{Label: column}
}

// Label returns the display label of column.
func Label(column string) string {
	return Spec(column).Label
}

// FilterLabel returns the label of a filter control, e.g.
// "Use Cases (application scenarios)".
func FilterLabel(column string) string {
	switch column {
	case dataset.ColumnUseCases:
		return column + " (application scenarios)"
	case dataset.ColumnRiskCategory:
		return column + " (risk category)"
	case dataset.ColumnContentType:
		return column + " (content type)"
	default:
		return column
	}
}

// FilterPlaceholder returns the hint shown by an empty filter control.
func FilterPlaceholder(column string) string {
	switch column {
	case dataset.ColumnUseCases:
		return "Select application scenarios..."
	case dataset.ColumnRiskCategory:
		return "Select risk categories..."
	case dataset.ColumnContentType:
		return "Select content types..."
	default:
		return "Select..."
	}
}

// Truncate shortens s to at most n runes, ending with an ellipsis when cut.
// Line breaks are flattened to spaces.
func Truncate(s string, n int) string {
	s = Flatten(s)
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	if n == 1 {
		return "…"
	}

	r := []rune(s)

	return string(r[:n-1]) + "…"
}

// Flatten collapses line breaks and runs of whitespace into single spaces.
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
