package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette.
const (
	ColorPrimary = lipgloss.Color("#8BC34A")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#2a3850")
	ColorError   = lipgloss.Color("#e53935")
	ColorWarning = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles used by the browser.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Muted    lipgloss.Style
	Sidebar  lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Cursor   lipgloss.Style
	Checked  lipgloss.Style
	Divider  lipgloss.Style
	Metric   lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style
	Table    table.Styles
}

// DefaultStyles returns the browser styles. With noColor set every style is
// left unstyled apart from bold text.
func DefaultStyles(noColor bool) Styles {
	ts := table.DefaultStyles()

	if noColor {
		plain := lipgloss.NewStyle()
		bold := plain.Bold(true)

		ts.Header = ts.Header.UnsetForeground().UnsetBorderForeground()
		ts.Selected = bold

		return Styles{
			Title:    bold,
			Subtitle: plain,
			Header:   bold,
			Muted:    plain,
			Sidebar:  plain.PaddingRight(2),
			Label:    bold,
			Focused:  bold.Underline(true),
			Cursor:   bold,
			Checked:  plain,
			Divider:  plain,
			Metric:   bold,
			Error:    bold,
			Warning:  bold,
			Help:     plain,
			Table:    ts,
		}
	}

	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#101F38")).
		Background(ColorPrimary).
		Bold(false)

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Subtitle: lipgloss.NewStyle().Foreground(ColorMuted),
		Header:   lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(ColorBorder).
			PaddingRight(2).
			MarginRight(1),
		Label:   lipgloss.NewStyle().Bold(true),
		Focused: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Cursor:  lipgloss.NewStyle().Foreground(ColorPrimary),
		Checked: lipgloss.NewStyle().Foreground(ColorPrimary),
		Divider: lipgloss.NewStyle().Foreground(ColorBorder),
		Metric:  lipgloss.NewStyle().Bold(true),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(ColorError),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Help:    lipgloss.NewStyle().Foreground(ColorMuted),
		Table:   ts,
	}
}
