package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hupe1980/guardbrowse/internal/dataset"
	"github.com/hupe1980/guardbrowse/internal/filter"
	"github.com/hupe1980/guardbrowse/internal/output"
)

const (
	title    = "🛡️ Guardrails Validators Browser"
	subtitle = "Filter by application scenario, risk category or content type using the filters on the left."
	hint     = "Multi-select supported; leave empty to show all."
	help     = "tab/shift+tab focus • ↑/↓ move • space toggle • c clear • C clear all • q quit"
)

// focusTable is the focus index of the results table; lower indices are
// pickers.
const focusTable = len(filterColumns)

var filterColumns = [...]string{
	dataset.ColumnUseCases,
	dataset.ColumnRiskCategory,
	dataset.ColumnContentType,
}

// Options configures a browser model.
type Options struct {
	// Result is the outcome of loading the spreadsheet.
	Result *dataset.Result

	// Selection is the initial filter selection.
	Selection filter.Selection

	// Mode is the tag match mode.
	Mode filter.MatchMode

	// NoColor disables colored output.
	NoColor bool

	// Logger receives debug output. The browser owns the terminal, so this
	// must not write to it.
	Logger *slog.Logger
}

// Model is the bubbletea model of the browser.
type Model struct {
	source  *dataset.Table
	notice  string
	mode    filter.MatchMode
	pickers []*picker
	focus   int
	result  *filter.Result
	results table.Model
	styles  Styles
	logger  *slog.Logger
	width   int
	height  int
}

// New builds a browser model and applies the initial selection.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if opts.Mode == "" {
		opts.Mode = filter.MatchSubstring
	}

	res := opts.Result
	if res == nil {
		res = &dataset.Result{Table: dataset.NewTable(nil, nil)}
	}

	m := &Model{
		source: res.Table,
		notice: res.Notice(),
		mode:   opts.Mode,
		styles: DefaultStyles(opts.NoColor),
		logger: opts.Logger,
	}

	for _, col := range filterColumns {
		m.pickers = append(m.pickers, newPicker(col, filter.Options(m.source, col), opts.Selection.Tags(col)))
	}

	m.results = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(false),
		table.WithHeight(15),
		table.WithStyles(m.styles.Table),
	)

	m.apply()

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetHeight(max(5, msg.Height-10))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focus + 1) % (focusTable + 1))
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + focusTable) % (focusTable + 1))
			return m, nil
		case "C":
			for _, p := range m.pickers {
				p.clear()
			}

			m.apply()

			return m, nil
		}

		if m.focus < focusTable {
			m.updatePicker(msg)
			return m, nil
		}
	}

	if m.focus == focusTable {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Model) updatePicker(msg tea.KeyMsg) {
	p := m.pickers[m.focus]

	switch msg.String() {
	case "up", "k":
		p.up()
	case "down", "j":
		p.down()
	case " ", "space", "enter":
		p.toggle()
		m.apply()
	case "c":
		p.clear()
		m.apply()
	}
}

func (m *Model) setFocus(i int) {
	m.focus = i

	if i == focusTable {
		m.results.Focus()
	} else {
		m.results.Blur()
	}
}

// Selection returns the current filter selection.
func (m *Model) Selection() filter.Selection {
	var sel filter.Selection
	for _, p := range m.pickers {
		sel.Set(p.column, p.tags())
	}

	return sel
}

// Result returns the current filter result.
func (m *Model) Result() *filter.Result {
	return m.result
}

// apply re-runs the filter over the full table and refreshes the results.
func (m *Model) apply() {
	sel := m.Selection()
	m.result = filter.Apply(m.source, sel, m.mode)

	m.logger.Debug("filters applied",
		slog.Int("count", m.result.Count),
		slog.Int("total", m.source.Len()),
		slog.Any("columns", sel.ActiveColumns()),
	)

	cols := m.source.Columns()
	rows := make([]table.Row, 0, m.result.Count)

	for _, r := range m.result.Table.Rows() {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = output.Truncate(r.Get(c), output.Spec(c).Width.Cells())
		}

		rows = append(rows, row)
	}

	m.results.SetRows(rows)
	m.results.GotoTop()
}

func (m *Model) columns() []table.Column {
	cols := m.source.Columns()
	out := make([]table.Column, 0, len(cols))

	for _, c := range cols {
		spec := output.Spec(c)
		out = append(out, table.Column{Title: spec.Label, Width: spec.Width.Cells()})
	}

	return out
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(subtitle))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Error.Render("✖ " + m.notice))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("q quit"))
		b.WriteString("\n")

		return b.String()
	}

	if m.source.Empty() {
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.mainView()))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(help))
	b.WriteString("\n")

	return b.String()
}

func (m *Model) sidebarView() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("🔍 Filters"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(hint))
	b.WriteString("\n\n")

	for i, p := range m.pickers {
		b.WriteString(p.view(m.styles, m.focus == i))
		b.WriteString("\n")
	}

	return m.styles.Sidebar.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) mainView() string {
	var b strings.Builder

	dividerWidth := 40
	if m.width > 0 {
		dividerWidth = max(10, m.width/2)
	}

	b.WriteString(m.styles.Divider.Render(strings.Repeat("─", dividerWidth)))
	b.WriteString("\n")
	b.WriteString(m.styles.Metric.Render(output.CountLine(m.result.Count)))
	b.WriteString("\n\n")
	b.WriteString(m.results.View())

	if m.result.NoMatches() {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Warning.Render("🔍 " + output.NoMatchesNotice))
	}

	return b.String()
}
