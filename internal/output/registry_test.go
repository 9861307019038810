package output

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/guardbrowse/internal/filter"
)

type stubFormatter struct{}

func (stubFormatter) Format(w io.Writer, res *filter.Result) error {
	_, err := io.WriteString(w, "stub")
	return err
}

func (stubFormatter) FormatNotice(io.Writer, string) error { return nil }

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestRegistry_Register_And_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Register("Stub", func() Formatter { return stubFormatter{} })

	f, err := r.Formatter("stub")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, &filter.Result{}))
	assert.Equal(t, "stub", buf.String())
}

func TestRegistry_UnknownFormat(t *testing.T) {
	r := NewRegistry()

	_, err := r.Formatter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "none")
}

func TestDefaultRegistry_Formats(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{"csv", "html", "json", "markdown", "table", "yaml"}, r.Formats())
	assert.Equal(t, "csv, html, json, markdown, table, yaml", r.AvailableFormats())
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"table", "MARKDOWN", "csv", "json", "yaml", "html"} {
		f, err := NewFormatter(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("pdf")
	assert.ErrorContains(t, err, "unknown output format")
}
