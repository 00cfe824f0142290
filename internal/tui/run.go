package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the program in the alternate screen and blocks until it quits
// or ctx is cancelled.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) error {
	p := tea.NewProgram(New(ctx, opts), append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)...)
	_, err := p.Run()
	return err
}
