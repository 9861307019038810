package diff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/guardbrowse/internal/dataset"
)

func TestListing(t *testing.T) {
	table := dataset.NewTable([]string{"Name", "Risk Category"}, []dataset.Row{
		{"Name": "A", "Risk Category": "Safety,\nPrivacy"},
		{"Name": "B"},
	})

	assert.Equal(t, "Name | Risk Category\nA | Safety, Privacy\nB | \n", Listing(table))
	assert.Equal(t, "", Listing(dataset.NewTable(nil, nil)))
}

func TestCompute_Identical(t *testing.T) {
	doc := "Name\nA\nB\n"
	result, err := Compute(doc, doc, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, result.HasDifferences)
	assert.Empty(t, result.Hunks)
}

func TestCompute_Different(t *testing.T) {
	result, err := Compute("Name\nA\nB\n", "Name\nA\nC\n", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
	require.Len(t, result.Hunks, 1)
	assert.Contains(t, result.Unified, "-B\n")
	assert.Contains(t, result.Unified, "+C\n")
	assert.NotContains(t, result.Hunks[0], "---")
}

func TestCompute_Labels(t *testing.T) {
	opts := DefaultOptions()
	opts.OldLabel = "before.xlsx"
	opts.NewLabel = "after.xlsx"

	result, err := Compute("a\n", "b\n", opts)
	require.NoError(t, err)
	assert.Contains(t, result.Unified, "--- before.xlsx")
	assert.Contains(t, result.Unified, "+++ after.xlsx")
}

func TestCompute_EmptySides(t *testing.T) {
	result, err := Compute("", "Name\nA\n", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
	assert.Contains(t, result.Unified, "+A\n")

	result, err = Compute("Name\nA", "", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
	assert.Contains(t, result.Unified, "-A\n")
}

func TestWrite_NoDifferences(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, &Result{}, false)
	assert.Equal(t, "No differences found.\n", buf.String())
}

func TestWrite_Color(t *testing.T) {
	result, err := Compute("a\n", "b\n", DefaultOptions())
	require.NoError(t, err)

	var plain, colored bytes.Buffer
	Write(&plain, result, false)
	Write(&colored, result, true)

	assert.NotContains(t, plain.String(), "\033[")
	assert.Contains(t, colored.String(), "\033[31m-a")
	assert.Contains(t, colored.String(), "\033[32m+b")
}

func TestSplitLines(t *testing.T) {
	assert.Empty(t, splitLines(""))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb"))
}
