package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ---------------------------------------------------------------------------
// Workbooks
// ---------------------------------------------------------------------------

func TestLoad_Workbook(t *testing.T) {
	p := writeWorkbook(t, sampleRecords)

	res := NewLoader(p).Load(context.Background())
	require.NoError(t, res.Err)
	assert.True(t, res.OK())
	assert.Empty(t, res.Notice())

	assert.Equal(t, sampleRecords[0], res.Table.Columns())
	assert.Equal(t, 3, res.Table.Len())
	assert.Equal(t, []string{"ToxicLanguage", "DetectPII", "ValidSQL"}, res.Table.Values(ColumnName))
	assert.Equal(t, "Privacy,HighRisk", res.Table.Row(1).Get(ColumnRiskCategory))
}

func TestLoad_MissingFilterCellsAreEmptyText(t *testing.T) {
	p := writeWorkbook(t, [][]string{
		{"Name", "Use Cases", "Risk Category", "Content Type"},
		{"OnlyName"},
	})

	res := NewLoader(p).Load(context.Background())
	require.NoError(t, res.Err)

	row := res.Table.Row(0)
	for _, col := range FilterColumns {
		v, ok := row[col]
		assert.True(t, ok, col)
		assert.Equal(t, "", v, col)
	}
}

func TestLoad_NumericCellsBecomeText(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"Name", "Risk Category"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Numbers"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 42))

	p := filepath.Join(t.TempDir(), "numeric.xlsx")
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	res := NewLoader(p).Load(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, "42", res.Table.Row(0).Get(ColumnRiskCategory))
}

func TestLoad_NamedSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Validators")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Validators", "A1", &[]string{"Name"}))
	require.NoError(t, f.SetSheetRow("Validators", "A2", &[]string{"FromSecondSheet"}))

	p := filepath.Join(t.TempDir(), "sheets.xlsx")
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	res := NewLoader(p, WithSheet("Validators")).Load(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"FromSecondSheet"}, res.Table.Values(ColumnName))
}

func TestLoad_UnknownSheet(t *testing.T) {
	p := writeWorkbook(t, sampleRecords)

	res := NewLoader(p, WithSheet("nope")).Load(context.Background())

	var readErr *ReadError
	require.ErrorAs(t, res.Err, &readErr)
	assert.True(t, res.Table.Empty())
}

// ---------------------------------------------------------------------------
// CSV
// ---------------------------------------------------------------------------

func TestLoad_CSV(t *testing.T) {
	p := writeFile(t, "validators.csv", "\ufeffName,Use Cases\nA,\"x, y\"\n\n,\nB\n")

	res := NewLoader(p).Load(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"Name", "Use Cases"}, res.Table.Columns())
	assert.Equal(t, []string{"A", "B"}, res.Table.Values("Name"))
	assert.Equal(t, []string{"x, y", ""}, res.Table.Values("Use Cases"))
}

func TestLoad_HeaderNames(t *testing.T) {
	p := writeFile(t, "dups.csv", " Name ,,Name\n1,2,3\n")

	res := NewLoader(p).Load(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"Name", "Unnamed: 1", "Name.1"}, res.Table.Columns())
	assert.Equal(t, "3", res.Table.Row(0).Get("Name.1"))
}

// ---------------------------------------------------------------------------
// Failures
// ---------------------------------------------------------------------------

func TestLoad_MissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "absent.xlsx")

	res := NewLoader(p).Load(context.Background())
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrFileNotFound)
	assert.NotNil(t, res.Table)
	assert.True(t, res.Table.Empty())
	assert.Contains(t, res.Notice(), "File not found")
	assert.Contains(t, res.Notice(), p)
}

func TestLoad_CorruptWorkbook(t *testing.T) {
	p := writeFile(t, "broken.xlsx", "definitely not a zip archive")

	res := NewLoader(p).Load(context.Background())

	var readErr *ReadError
	require.ErrorAs(t, res.Err, &readErr)
	assert.Equal(t, p, readErr.Path)
	assert.False(t, errors.Is(res.Err, ErrFileNotFound))
	assert.True(t, res.Table.Empty())
	assert.Contains(t, res.Notice(), "Error reading file")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	p := writeFile(t, "validators.txt", "Name\nA\n")

	res := NewLoader(p).Load(context.Background())
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "unsupported file type")
}

func TestLoad_Directory(t *testing.T) {
	res := NewLoader(t.TempDir()).Load(context.Background())

	var readErr *ReadError
	require.ErrorAs(t, res.Err, &readErr)
}

func TestLoad_CancelledContext(t *testing.T) {
	p := writeWorkbook(t, sampleRecords)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewLoader(p).Load(ctx)
	require.ErrorIs(t, res.Err, context.Canceled)
	assert.True(t, res.Table.Empty())
}

// ---------------------------------------------------------------------------
// Memoization
// ---------------------------------------------------------------------------

func TestLoad_ReadsOnce(t *testing.T) {
	p := writeWorkbook(t, sampleRecords)
	l := NewLoader(p)

	first := l.Load(context.Background())
	require.NoError(t, os.Remove(p))
	second := l.Load(context.Background())

	assert.Same(t, first, second)
	assert.Equal(t, 1, l.Reads())
	assert.Equal(t, 3, second.Table.Len())
}

func TestLoad_ConcurrentFirstAccess(t *testing.T) {
	p := writeWorkbook(t, sampleRecords)
	l := NewLoader(p)

	var wg sync.WaitGroup

	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			results[i] = l.Load(context.Background())
		}(i)
	}

	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}

	assert.Equal(t, 1, l.Reads())
}

func TestLoad_FailureIsCachedToo(t *testing.T) {
	p := filepath.Join(t.TempDir(), "later.csv")
	l := NewLoader(p)

	first := l.Load(context.Background())
	require.ErrorIs(t, first.Err, ErrFileNotFound)

	require.NoError(t, os.WriteFile(p, []byte("Name\nA\n"), 0o600))

	second := l.Load(context.Background())
	assert.ErrorIs(t, second.Err, ErrFileNotFound)
	assert.Equal(t, 1, l.Reads())
}

func TestNewLoader_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFile, NewLoader("").Path())
}

func TestDefault_ReturnsSameLoader(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.xlsx")

	a := Default(p, "")
	b := Default(p, "")
	c := Default(p, "Other")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
