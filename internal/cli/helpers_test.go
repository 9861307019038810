package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var catalogRecords = [][]string{
	{"Name", "Description", "Use Cases", "Risk Category", "Content Type", "Infrastructure"},
	{"ToxicLanguage", "Flags toxic text", "Chatbot, RAG", "Safety", "Text", "ML"},
	{"SecretsPresent", "Detects secrets", "Agents", "HighRisk", "Text, Code", "Regex"},
	{"NSFWImage", "Blocks NSFW images", "RAG", "Privacy", "Image", "ML"},
}

// writeCatalog writes records as an .xlsx workbook in a temp dir.
func writeCatalog(t *testing.T, records [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "validators.xlsx")
	saveCatalog(t, path, records)

	return path
}

// saveCatalog writes records as an .xlsx workbook at path.
func saveCatalog(t *testing.T, path string, records [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)

		row := make([]interface{}, len(rec))
		for j, v := range rec {
			row[j] = v
		}

		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	require.NoError(t, f.SaveAs(path))
}

// withRow returns a copy of records with row appended.
func withRow(records [][]string, row ...string) [][]string {
	out := append([][]string{}, records...)
	return append(out, row)
}

// writeTempFile writes content to name in a temp dir.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
