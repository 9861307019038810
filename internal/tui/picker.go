package tui

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/hupe1980/guardbrowse/internal/output"
)

// maxVisibleOptions bounds the options listed per picker.
const maxVisibleOptions = 8

// picker is a multi-select over the tag options of one filter column.
type picker struct {
	column   string
	options  []string
	selected sets.Set[string]
	cursor   int
}

// newPicker builds a picker with initial selected. Selected tags that are not
// among options are listed first so they stay visible and can be toggled off.
func newPicker(column string, options []string, initial []string) *picker {
	selected := sets.New(initial...)
	extra := sets.List(selected.Difference(sets.New(options...)))

	if len(extra) > 0 {
		options = append(extra, options...)
	}

	return &picker{
		column:   column,
		options:  options,
		selected: selected,
	}
}

func (p *picker) up() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *picker) down() {
	if p.cursor < len(p.options)-1 {
		p.cursor++
	}
}

// toggle flips the option under the cursor.
func (p *picker) toggle() {
	if len(p.options) == 0 {
		return
	}

	tag := p.options[p.cursor]
	if p.selected.Has(tag) {
		p.selected.Delete(tag)
	} else {
		p.selected.Insert(tag)
	}
}

func (p *picker) clear() {
	p.selected = sets.New[string]()
}

// tags returns the selected tags in sorted order.
func (p *picker) tags() []string {
	return sets.List(p.selected)
}

// window returns the [start, end) range of options to render so that the
// cursor stays visible.
func (p *picker) window() (int, int) {
	n := len(p.options)
	if n <= maxVisibleOptions {
		return 0, n
	}

	start := p.cursor - maxVisibleOptions/2
	if start < 0 {
		start = 0
	}

	if start+maxVisibleOptions > n {
		start = n - maxVisibleOptions
	}

	return start, start + maxVisibleOptions
}

func (p *picker) view(s Styles, focused bool) string {
	var b strings.Builder

	label := output.FilterLabel(p.column)
	if focused {
		b.WriteString(s.Focused.Render(label))
	} else {
		b.WriteString(s.Label.Render(label))
	}

	if n := p.selected.Len(); n > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf(" (%d selected)", n)))
	}

	b.WriteString("\n")

	if p.selected.Len() == 0 {
		b.WriteString(s.Muted.Render(output.FilterPlaceholder(p.column)))
		b.WriteString("\n")
	}

	if len(p.options) == 0 {
		b.WriteString(s.Muted.Render("(no tags)"))
		b.WriteString("\n")

		return b.String()
	}

	start, end := p.window()
	if start > 0 {
		b.WriteString(s.Muted.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		tag := p.options[i]

		cursor := "  "
		if focused && i == p.cursor {
			cursor = s.Cursor.Render("> ")
		}

		box := "[ ]"
		if p.selected.Has(tag) {
			box = s.Checked.Render("[x]")
		}

		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, tag)
	}

	if end < len(p.options) {
		b.WriteString(s.Muted.Render("  ↓ more"))
		b.WriteString("\n")
	}

	return b.String()
}
