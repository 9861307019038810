package dataset

import "strings"

// Well-known column names of the validator spreadsheet.
const (
	ColumnName           = "Name"
	ColumnDescription    = "Description"
	ColumnUseCases       = "Use Cases"
	ColumnRiskCategory   = "Risk Category"
	ColumnContentType    = "Content Type"
	ColumnInfrastructure = "Infrastructure"
)

// FilterColumns lists the comma-separated tag columns in display order.
var FilterColumns = []string{ColumnUseCases, ColumnRiskCategory, ColumnContentType}

// IsFilterColumn reports whether column is one of the tag columns.
func IsFilterColumn(column string) bool {
	for _, c := range FilterColumns {
		if c == column {
			return true
		}
	}

	return false
}

var filterColumnAliases = map[string]string{
	"use-cases":       ColumnUseCases,
	"use-case":        ColumnUseCases,
	"usecases":        ColumnUseCases,
	"risk":            ColumnRiskCategory,
	"risks":           ColumnRiskCategory,
	"risk-category":   ColumnRiskCategory,
	"risk-categories": ColumnRiskCategory,
	"content-type":    ColumnContentType,
	"content-types":   ColumnContentType,
}

// ResolveFilterColumn maps a user-supplied name to a tag column. It accepts
// the column name itself (case-insensitive) and short aliases such as
// "use-cases", "risk" or "content-type"; underscores count as dashes.
func ResolveFilterColumn(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))

	for _, c := range FilterColumns {
		if strings.ToLower(c) == key {
			return c, true
		}
	}

	col, ok := filterColumnAliases[strings.ReplaceAll(key, "_", "-")]

	return col, ok
}

// Row maps a column name to its text value. A column that is absent from
// the row reads as empty text.
type Row map[string]string

// Get returns the value of column, or "" when the row has no such column.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is an ordered, read-only set of rows sharing the same columns.
// The zero value and nil are both valid empty tables.
type Table struct {
	columns []string
	rows    []Row
}

// NewTable creates a table. Every row is normalized so that it carries a
// text value for each column.
func NewTable(columns []string, rows []Row) *Table {
	cols := append([]string(nil), columns...)
	out := make([]Row, 0, len(rows))

	for _, r := range rows {
		nr := make(Row, len(cols))
		for _, c := range cols {
			nr[c] = r[c]
		}

		out = append(out, nr)
	}

	return &Table{columns: cols, rows: out}
}

// Columns returns the column names in source order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}

	return append([]string(nil), t.columns...)
}

// Rows returns the rows in source order. Callers must not modify them.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}

	return append([]Row(nil), t.rows...)
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}

	for _, c := range t.columns {
		if c == name {
			return true
		}
	}

	return false
}

// Values returns the column's value for every row, in row order.
func (t *Table) Values(column string) []string {
	values := make([]string, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		values = append(values, t.rows[i][column])
	}

	return values
}

// Select returns a new table holding the rows for which keep returns true.
// The receiver is left untouched and row order is preserved.
func (t *Table) Select(keep func(Row) bool) *Table {
	out := &Table{columns: t.Columns()}

	for i := 0; i < t.Len(); i++ {
		if keep(t.rows[i]) {
			out.rows = append(out.rows, t.rows[i])
		}
	}

	return out
}
