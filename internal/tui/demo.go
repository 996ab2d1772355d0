package tui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Iron-Ham/composite/internal/command"
)

// Child kinds shown in the child list.
const (
	kindSync   = "sync"
	kindAsync  = "async"
	kindToggle = "toggle"
)

// demoChild is one member of the demo composite, with a switch that
// drives its guard.
type demoChild struct {
	name    string
	kind    string
	enabled atomic.Bool
	cmd     command.Command
	raise   func()
}

func (c *demoChild) canExecute(any) bool {
	return c.enabled.Load()
}

// setEnabled flips the guard and notifies the child's observers.
func (c *demoChild) setEnabled(enabled bool) {
	if c.enabled.Swap(enabled) != enabled {
		c.raise()
	}
}

// newDemoChildren builds the three demo children: a synchronous relay, an
// asynchronous relay that works for delay, and a toggle. report is called
// with the child's name each time one runs.
func newDemoChildren(delay time.Duration, report func(name string)) []*demoChild {
	validate := &demoChild{name: "validate", kind: kindSync}
	relay := command.NewRelay(func(any) error {
		report(validate.name)
		return nil
	}, validate.canExecute)
	validate.cmd = relay
	validate.raise = relay.RaiseCanExecuteChanged

	transfer := &demoChild{name: "transfer", kind: kindAsync}
	async := command.NewAsyncRelay(func(ctx context.Context, _ any) error {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		report(transfer.name)
		return nil
	}, transfer.canExecute)
	transfer.cmd = async
	transfer.raise = async.RaiseCanExecuteChanged

	notify := &demoChild{name: "notify", kind: kindToggle}
	toggle := command.NewToggle(false, notify.canExecute)
	notify.cmd = toggle
	notify.raise = toggle.RaiseCanExecuteChanged

	children := []*demoChild{validate, transfer, notify}
	for _, c := range children {
		c.enabled.Store(true)
	}
	return children
}
