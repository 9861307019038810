package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/filter"
)

func sampleResult(sel filter.Selection) *filter.Result {
	table := dataset.NewTable(
		[]string{dataset.ColumnName, dataset.ColumnDescription, dataset.ColumnRiskCategory},
		[]dataset.Row{
			{"Name": "DetectPII", "Description": "Finds personal data", "Risk Category": "Privacy"},
			{"Name": "Pipe|Name", "Description": "line one\nline two", "Risk Category": "Safety"},
		},
	)

	return filter.Apply(table, sel, filter.MatchSubstring)
}

func render(t *testing.T, name string, res *filter.Result) string {
	t.Helper()

	f, err := NewFormatter(name)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, res))

	return buf.String()
}

func renderNotice(t *testing.T, name, notice string) string {
	t.Helper()

	f, err := NewFormatter(name)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.FormatNotice(&buf, notice))

	return buf.String()
}

// ---------------------------------------------------------------------------
// Shared lines
// ---------------------------------------------------------------------------

func TestSelectionLine(t *testing.T) {
	assert.Empty(t, SelectionLine(filter.Selection{}))

	line := SelectionLine(filter.Selection{UseCases: []string{"a", "b"}, ContentTypes: []string{"Text"}})
	assert.Equal(t, "Filters: Use Cases = a | b; Content Type = Text", line)
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func TestTableFormatter(t *testing.T) {
	out := render(t, "table", sampleResult(filter.Selection{}))

	assert.Contains(t, out, "Matching results: 2")
	assert.Contains(t, out, "VALIDATOR")
	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "DetectPII")
	assert.Contains(t, out, "line one line two")
	assert.NotContains(t, out, NoMatchesNotice)
}

func TestTableFormatter_NoMatches(t *testing.T) {
	out := render(t, "table", sampleResult(filter.Selection{RiskCategories: []string{"Nothing"}}))

	assert.Contains(t, out, "Filters: Risk Category = Nothing")
	assert.Contains(t, out, "Matching results: 0")
	assert.Contains(t, out, NoMatchesNotice)
	assert.NotContains(t, out, "VALIDATOR")
}

func TestTableFormatter_Notice(t *testing.T) {
	assert.Equal(t, "✖ File not found: x\n", renderNotice(t, "table", "File not found: x"))
}

// ---------------------------------------------------------------------------
// Markdown
// ---------------------------------------------------------------------------

func TestMarkdownFormatter(t *testing.T) {
	out := render(t, "markdown", sampleResult(filter.Selection{}))

	assert.Contains(t, out, "**Matching results: 2**")
	assert.Contains(t, out, "| Validator | Description | Risk Category |")
	assert.Contains(t, out, "| --- | --- | --- |")
	assert.Contains(t, out, `| Pipe\|Name | line one line two | Safety |`)
}

func TestMarkdownFormatter_NoMatchesAndNotice(t *testing.T) {
	out := render(t, "markdown", sampleResult(filter.Selection{UseCases: []string{"x"}}))
	assert.Contains(t, out, "> "+NoMatchesNotice)

	assert.Contains(t, renderNotice(t, "markdown", "boom"), "> **Error:** boom")
}

// ---------------------------------------------------------------------------
// CSV
// ---------------------------------------------------------------------------

func TestCSVFormatter(t *testing.T) {
	out := render(t, "csv", sampleResult(filter.Selection{RiskCategories: []string{"Safety"}}))

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Name", "Description", "Risk Category"}, records[0])
	assert.Equal(t, []string{"Pipe|Name", "line one\nline two", "Safety"}, records[1])

	assert.Empty(t, renderNotice(t, "csv", "boom"))
}

// ---------------------------------------------------------------------------
// JSON / YAML
// ---------------------------------------------------------------------------

func TestJSONFormatter(t *testing.T) {
	out := render(t, "json", sampleResult(filter.Selection{RiskCategories: []string{"Privacy"}}))

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, 1, doc.Count)
	assert.Len(t, doc.Rows, doc.Count)
	assert.Equal(t, "substring", doc.Match)
	assert.Equal(t, []string{"Name", "Description", "Risk Category"}, doc.Columns)
	assert.Equal(t, "DetectPII", doc.Rows[0]["Name"])
	require.NotNil(t, doc.Selection)
	assert.Equal(t, []string{"Privacy"}, doc.Selection.RiskCategories)
	assert.Empty(t, doc.Notice)
}

func TestJSONFormatter_NoMatchesAndNotice(t *testing.T) {
	out := render(t, "json", sampleResult(filter.Selection{UseCases: []string{"x"}}))
	assert.Contains(t, out, `"count": 0`)
	assert.Contains(t, out, `"rows": []`)
	assert.Contains(t, out, NoMatchesNotice)

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(renderNotice(t, "json", "File not found: a.xlsx")), &doc))
	assert.Equal(t, "File not found: a.xlsx", doc.Error)
	assert.Equal(t, 0, doc.Count)
}

func TestYAMLFormatter(t *testing.T) {
	out := render(t, "yaml", sampleResult(filter.Selection{}))

	var doc Document
	require.NoError(t, sigsyaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Count)
	assert.Nil(t, doc.Selection)
	assert.Contains(t, out, "count: 2")

	assert.Contains(t, renderNotice(t, "yaml", "boom"), "error: boom")
}

// ---------------------------------------------------------------------------
// HTML
// ---------------------------------------------------------------------------

func TestHTMLFormatter(t *testing.T) {
	out := render(t, "html", sampleResult(filter.Selection{}))

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Matching results: 2")
	assert.Contains(t, out, `<th class="medium">Validator</th>`)
	assert.Contains(t, out, `<th class="large">Description</th>`)
	assert.Contains(t, out, "<td>DetectPII</td>")
	assert.NotContains(t, out, `class="warning"`)
}

func TestHTMLFormatter_EscapesAndWarns(t *testing.T) {
	table := dataset.NewTable([]string{"Name"}, []dataset.Row{{"Name": "<script>"}})

	out := render(t, "html", filter.Apply(table, filter.Selection{}, filter.MatchSubstring))
	assert.NotContains(t, out, "<td><script></td>")
	assert.Contains(t, out, "&lt;script&gt;")

	out = render(t, "html", filter.Apply(table, filter.Selection{UseCases: []string{"x"}}, filter.MatchSubstring))
	assert.Contains(t, out, NoMatchesNotice)

	out = renderNotice(t, "html", "File not found")
	assert.Contains(t, out, `<p class="error">File not found</p>`)
	assert.NotContains(t, out, "<table>")
}
