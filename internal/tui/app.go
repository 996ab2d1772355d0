// Package tui implements an interactive demo of a composite command: three
// children whose guards can be switched on and off, a can-execute mode that
// can be cycled, and cancellable execution runs.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/composite/internal/event"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   *Model
}

// New creates a new TUI application
func New(opts Options) (*App, error) {
	model, err := NewModel(opts)
	if err != nil {
		return nil, err
	}
	return &App{model: model}, nil
}

// Run starts the TUI application and blocks until it exits
func (a *App) Run() error {
	a.program = tea.NewProgram(a.model, tea.WithAltScreen())
	a.model.send = a.program.Send

	// Composite notifications may be published from inside Update, so they
	// are forwarded on their own goroutine.
	comp := a.model.Composite()
	forward := func(event.Event) {
		go a.program.Send(availabilityMsg{})
	}
	canExecuteSub := comp.Events().Subscribe(event.TypeCanExecuteChanged, forward)
	countSub := comp.Events().Subscribe(event.TypeCountChanged, forward)
	defer comp.Events().Unsubscribe(canExecuteSub)
	defer comp.Events().Unsubscribe(countSub)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()

	signal.Stop(sigChan)
	close(sigChan)
	comp.Dispose()

	return err
}
