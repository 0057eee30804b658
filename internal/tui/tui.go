// Package tui renders the board: stage columns with continent swimlanes,
// mouse drag-and-drop between them, and swipe-style stage moves when the
// terminal is too narrow for columns.
package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"ledger-cli/internal/board"
	"ledger-cli/internal/persist"
)

// Options configures the interactive board.
type Options struct {
	// Remote is the persistence backend; nil runs the seeded demo board.
	Remote persist.Remote
	Logger *logrus.Logger
}

// applyMsg carries a store mutation from a background save onto the UI
// loop. The store is only ever touched while handling messages.
type applyMsg struct {
	apply func()
}

func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
		opts.Logger.SetOutput(io.Discard)
	}

	store := board.NewStore()
	var p *tea.Program
	bridge := persist.NewBridge(store, persist.Options{
		Remote: opts.Remote,
		Logger: opts.Logger,
		// Sends are safe from any goroutine; p is set before Run starts
		// delivering messages.
		Deliver: func(apply func()) { p.Send(applyMsg{apply: apply}) },
	})

	m := newAppModel(store, bridge, opts.Logger)
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
