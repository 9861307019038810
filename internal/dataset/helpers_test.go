package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sampleRecords = [][]string{
	{"Name", "Description", "Use Cases", "Risk Category", "Content Type", "Infrastructure"},
	{"ToxicLanguage", "Flags toxic text", "Chatbot, Moderation", "Safety", "Text", "Local"},
	{"DetectPII", "Finds personal data", "Compliance", "Privacy,HighRisk", "Text, Code", "Remote"},
	{"ValidSQL", "Checks SQL syntax", "", "", "Code", ""},
}

func writeWorkbook(t *testing.T, records [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rec))
	}

	p := filepath.Join(t.TempDir(), "validators.xlsx")
	require.NoError(t, f.SaveAs(p))

	return p
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}
