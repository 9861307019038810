package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/filter"
)

// NoMatchesNotice is shown when a selection leaves no rows.
const NoMatchesNotice = "No validators match the selected filters; try removing some."

// Formatter renders a filter result, or a load failure in its place.
type Formatter interface {
	Format(w io.Writer, res *filter.Result) error
	FormatNotice(w io.Writer, notice string) error
}

// CountLine returns the result counter text.
func CountLine(count int) string {
	return fmt.Sprintf("Matching results: %d", count)
}

// SelectionLine describes the active filters, or "" when none is active.
func SelectionLine(sel filter.Selection) string {
	active := sel.ActiveColumns()
	if len(active) == 0 {
		return ""
	}

	parts := make([]string, 0, len(active))
	for _, col := range active {
		parts = append(parts, fmt.Sprintf("%s = %s", col, strings.Join(sel.Tags(col), " | ")))
	}

	return "Filters: " + strings.Join(parts, "; ")
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

// TableFormatter renders an aligned plain-text table with truncated cells.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, res *filter.Result) error {
	if line := SelectionLine(res.Selection); line != "" {
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w, CountLine(res.Count))

	if res.NoMatches() {
		_, err := fmt.Fprintln(w, NoMatchesNotice)
		return err
	}

	fmt.Fprintln(w)

	cols := res.Table.Columns()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = strings.ToUpper(Label(c))
	}

	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range res.Table.Rows() {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = Truncate(row.Get(c), Spec(c).Width.Cells())
		}

		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

func (f *TableFormatter) FormatNotice(w io.Writer, notice string) error {
	_, err := fmt.Fprintf(w, "✖ %s\n", notice)
	return err
}

// ---------------------------------------------------------------------------
// Markdown
// ---------------------------------------------------------------------------

// MarkdownFormatter renders a Markdown table.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, res *filter.Result) error {
	fmt.Fprintf(w, "# Guardrails Validators\n\n")

	if line := SelectionLine(res.Selection); line != "" {
		fmt.Fprintf(w, "%s  \n", line)
	}

	fmt.Fprintf(w, "**%s**\n\n", CountLine(res.Count))

	if res.NoMatches() {
		_, err := fmt.Fprintf(w, "> %s\n", NoMatchesNotice)
		return err
	}

	cols := res.Table.Columns()

	labels := make([]string, len(cols))
	rules := make([]string, len(cols))

	for i, c := range cols {
		labels[i] = markdownCell(Label(c))
		rules[i] = "---"
	}

	fmt.Fprintf(w, "| %s |\n", strings.Join(labels, " | "))
	fmt.Fprintf(w, "| %s |\n", strings.Join(rules, " | "))

	for _, row := range res.Table.Rows() {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = markdownCell(row.Get(c))
		}

		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}

	return nil
}

func (f *MarkdownFormatter) FormatNotice(w io.Writer, notice string) error {
	_, err := fmt.Fprintf(w, "> **Error:** %s\n", notice)
	return err
}

func markdownCell(s string) string {
	return strings.ReplaceAll(Flatten(s), "|", `\|`)
}

// ---------------------------------------------------------------------------
// CSV
// ---------------------------------------------------------------------------

// CSVFormatter writes the kept rows with the source column names, so the
// output can be loaded again.
type CSVFormatter struct{}

func (f *CSVFormatter) Format(w io.Writer, res *filter.Result) error {
	cw := csv.NewWriter(w)
	cols := res.Table.Columns()

	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range res.Table.Rows() {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = row.Get(c)
		}

		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// FormatNotice writes nothing; a CSV stream has no place for a message.
func (f *CSVFormatter) FormatNotice(io.Writer, string) error {
	return nil
}

// ---------------------------------------------------------------------------
// JSON / YAML
// ---------------------------------------------------------------------------

// Document is the structured form of a result used by the json and yaml
// formats.
type Document struct {
	Count     int                 `json:"count"`
	Match     string              `json:"match,omitempty"`
	Selection *filter.Selection   `json:"selection,omitempty"`
	Columns   []string            `json:"columns"`
	Rows      []map[string]string `json:"rows"`
	Notice    string              `json:"notice,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// NewDocument converts a result to a Document.
func NewDocument(res *filter.Result) Document {
	doc := Document{
		Count:   res.Count,
		Match:   string(res.Mode),
		Columns: res.Table.Columns(),
		Rows:    make([]map[string]string, 0, res.Count),
	}

	if doc.Columns == nil {
		doc.Columns = []string{}
	}

	if !res.Selection.IsEmpty() {
		sel := res.Selection
		doc.Selection = &sel
	}

	for _, row := range res.Table.Rows() {
		doc.Rows = append(doc.Rows, copyRow(row))
	}

	if res.NoMatches() {
		doc.Notice = NoMatchesNotice
	}

	return doc
}

func noticeDocument(notice string) Document {
	return Document{Columns: []string{}, Rows: []map[string]string{}, Error: notice}
}

func copyRow(row dataset.Row) map[string]string {
	m := make(map[string]string, len(row))
	for k, v := range row {
		m[k] = v
	}

	return m
}

// JSONFormatter renders an indented JSON Document.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, res *filter.Result) error {
	return writeJSON(w, NewDocument(res))
}

func (f *JSONFormatter) FormatNotice(w io.Writer, notice string) error {
	return writeJSON(w, noticeDocument(notice))
}

func writeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// YAMLFormatter renders a YAML Document.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, res *filter.Result) error {
	return writeYAML(w, NewDocument(res))
}

func (f *YAMLFormatter) FormatNotice(w io.Writer, notice string) error {
	return writeYAML(w, noticeDocument(notice))
}

func writeYAML(w io.Writer, doc Document) error {
	data, err := sigsyaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serializing YAML: %w", err)
	}

	_, err = w.Write(data)

	return err
}

// ---------------------------------------------------------------------------
// HTML
// ---------------------------------------------------------------------------

// HTMLFormatter renders a standalone HTML page.
type HTMLFormatter struct{}

type htmlColumn struct {
	Label string
	Class string
}

type htmlPage struct {
	Title     string
	Selection string
	Count     string
	Columns   []htmlColumn
	Rows      [][]string
	Warning   string
	Error     string
}

var htmlTpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:sans-serif;margin:2em;line-height:1.5}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ddd;padding:6px;text-align:left;vertical-align:top}
th{background:#f5f5f5}
.medium{width:14em}
.large{width:32em}
.metric{font-size:1.4em;font-weight:bold}
.warning{background:#fff8e1;padding:.8em;border-radius:4px}
.error{background:#fdecea;padding:.8em;border-radius:4px}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- else}}
{{- if .Selection}}
<p>{{.Selection}}</p>
{{- end}}
<hr>
<p class="metric">{{.Count}}</p>
<table>
<thead><tr>{{range .Columns}}<th class="{{.Class}}">{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- if .Warning}}
<p class="warning">{{.Warning}}</p>
{{- end}}
{{- end}}
</body>
</html>
`))

const pageTitle = "Guardrails Validators"

func (f *HTMLFormatter) Format(w io.Writer, res *filter.Result) error {
	page := htmlPage{
		Title:     pageTitle,
		Selection: SelectionLine(res.Selection),
		Count:     CountLine(res.Count),
	}

	cols := res.Table.Columns()
	for _, c := range cols {
		page.Columns = append(page.Columns, htmlColumn{Label: Label(c), Class: widthClass(Spec(c).Width)})
	}

	for _, row := range res.Table.Rows() {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = row.Get(c)
		}

		page.Rows = append(page.Rows, cells)
	}

	if res.NoMatches() {
		page.Warning = NoMatchesNotice
	}

	return htmlTpl.Execute(w, page)
}

func (f *HTMLFormatter) FormatNotice(w io.Writer, notice string) error {
	return htmlTpl.Execute(w, htmlPage{Title: pageTitle, Error: notice})
}

func widthClass(w Width) string {
	switch w {
	case WidthMedium:
		return "medium"
	case WidthLarge:
		return "large"
	default:
		return ""
	}
}
