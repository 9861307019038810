package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser and blocks until the user quits or ctx is
// cancelled. Extra program options are appended to the defaults (alternate
// screen, ctx).
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	m := New(opts)

	all := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)

	if _, err := tea.NewProgram(m, all...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("running browser: %w", err)
	}

	return nil
}
