package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultFile is the spreadsheet read when no path is configured.
const DefaultFile = "Organized_Guardrails_Validators.xlsx"

// ErrFileNotFound is reported when the spreadsheet does not exist.
var ErrFileNotFound = errors.New("file not found")

// ReadError reports a spreadsheet that exists but could not be read or parsed.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Result is the outcome of a load. Table is never nil; it is empty when Err
// is set.
type Result struct {
	Path  string
	Table *Table
	Err   error
}

// OK reports whether the load succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Notice returns the user-facing message for a failed load, or "" on success.
func (r *Result) Notice() string {
	var readErr *ReadError

	switch {
	case r.Err == nil:
		return ""
	case errors.Is(r.Err, ErrFileNotFound):
		return fmt.Sprintf("File not found: %s. Make sure the spreadsheet is in the working directory.", r.Path)
	case errors.As(r.Err, &readErr):
		return fmt.Sprintf("Error reading file: %v", readErr.Err)
	default:
		return fmt.Sprintf("Error reading file: %v", r.Err)
	}
}

// Loader reads one spreadsheet at most once. The first call to Load reads
// the file; later calls return the same Result. A new Loader starts a new
// lifecycle.
type Loader struct {
	path   string
	sheet  string
	logger *slog.Logger

	once   sync.Once
	result *Result
	reads  int
}

// Option configures a Loader.
type Option func(*Loader)

// WithSheet selects the worksheet of an Excel workbook. The first sheet is
// used when unset.
func WithSheet(sheet string) Option {
	return func(l *Loader) {
		l.sheet = sheet
	}
}

// WithLogger sets the logger used to report load progress.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader for path. An empty path selects DefaultFile.
func NewLoader(path string, opts ...Option) *Loader {
	if path == "" {
		path = DefaultFile
	}

	l := &Loader{
		path:   path,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Path returns the spreadsheet path.
func (l *Loader) Path() string {
	return l.path
}

// Reads returns how many times the file has been read (0 or 1).
func (l *Loader) Reads() int {
	return l.reads
}

// Load returns the table, reading the file on first use only.
func (l *Loader) Load(ctx context.Context) *Result {
	l.once.Do(func() {
		l.result = l.read(ctx)
	})

	return l.result
}

func (l *Loader) read(ctx context.Context) *Result {
	l.reads++

	res := &Result{Path: l.path, Table: NewTable(nil, nil)}

	if err := ctx.Err(); err != nil {
		res.Err = &ReadError{Path: l.path, Err: err}
		return res
	}

	info, err := os.Stat(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		res.Err = fmt.Errorf("%w: %s", ErrFileNotFound, l.path)
		l.logger.Warn("spreadsheet not found", slog.String("path", l.path))

		return res
	}

	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", l.path)
	}

	if err != nil {
		res.Err = &ReadError{Path: l.path, Err: err}
		l.logger.Warn("spreadsheet unreadable", slog.String("path", l.path), slog.String("error", err.Error()))

		return res
	}

	records, err := l.readRecords()
	if err != nil {
		res.Err = &ReadError{Path: l.path, Err: err}
		l.logger.Warn("spreadsheet unreadable", slog.String("path", l.path), slog.String("error", err.Error()))

		return res
	}

	res.Table = buildTable(records)

	l.logger.Debug("spreadsheet loaded",
		slog.String("path", l.path),
		slog.Int("rows", res.Table.Len()),
		slog.Int("columns", len(res.Table.columns)),
	)

	return res
}

func (l *Loader) readRecords() ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(l.path)); ext {
	case ".xlsx", ".xlsm":
		return readWorkbook(l.path, l.sheet)
	case ".csv":
		return readCSV(l.path)
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .xlsx, .xlsm or .csv)", ext)
	}
}

// buildTable turns raw records into a table. The first non-blank record is
// the header; blank records are skipped.
func buildTable(records [][]string) *Table {
	var header []string

	start := 0
	for ; start < len(records); start++ {
		if !blank(records[start]) {
			header = headerNames(records[start])
			start++

			break
		}
	}

	rows := make([]Row, 0, len(records))

	for _, rec := range records[min(start, len(records)):] {
		if blank(rec) {
			continue
		}

		row := make(Row, len(header))

		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}

		rows = append(rows, row)
	}

	return NewTable(header, rows)
}

// headerNames trims the header cells, names empty ones "Unnamed: <i>" and
// suffixes duplicates with ".<n>".
func headerNames(cells []string) []string {
	names := make([]string, 0, len(cells))
	seen := make(map[string]int, len(cells))

	for i, c := range cells {
		name := strings.TrimSpace(c)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}

		names = append(names, name)
	}

	return names
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

var (
	defaultMu      sync.Mutex
	defaultLoaders = map[string]*Loader{}
)

// Default returns the process-wide loader for path and sheet, creating it on
// first use. Its table is read once and kept until the process exits.
func Default(path, sheet string, opts ...Option) *Loader {
	if path == "" {
		path = DefaultFile
	}

	key := path + "\x00" + sheet

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if l, ok := defaultLoaders[key]; ok {
		return l
	}

	l := NewLoader(path, append([]Option{WithSheet(sheet)}, opts...)...)
	defaultLoaders[key] = l

	return l
}
