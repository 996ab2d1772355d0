package command

import (
	"context"
	"sync"

	"github.com/Iron-Ham/composite/internal/event"
)

// notifier provides a lazily created event bus for leaf commands.
type notifier struct {
	once sync.Once
	bus  *event.Bus
}

// Events returns the command's bus, creating it on first use.
func (n *notifier) Events() *event.Bus {
	n.once.Do(func() {
		n.bus = event.NewBus()
	})
	return n.bus
}

func (n *notifier) raiseCanExecuteChanged(source any) {
	n.Events().Publish(event.NewCanExecuteChangedEvent(source))
}

// Relay is a synchronous command backed by functions.
type Relay struct {
	notifier
	execute    func(param any) error
	canExecute func(param any) bool
}

// NewRelay creates a Relay. canExecute may be nil, in which case the
// command can always execute.
func NewRelay(execute func(param any) error, canExecute func(param any) bool) *Relay {
	return &Relay{execute: execute, canExecute: canExecute}
}

// Execute runs the relay's function.
func (r *Relay) Execute(param any) error {
	if r.execute == nil {
		return nil
	}
	return r.execute(param)
}

// CanExecute evaluates the relay's guard.
func (r *Relay) CanExecute(param any) bool {
	if r.canExecute == nil {
		return true
	}
	return r.canExecute(param)
}

// RaiseCanExecuteChanged tells observers to re-query CanExecute.
func (r *Relay) RaiseCanExecuteChanged() {
	r.raiseCanExecuteChanged(r)
}

// AsyncRelay is an asynchronous command backed by functions.
type AsyncRelay struct {
	notifier
	execute    func(ctx context.Context, param any) error
	canExecute func(param any) bool
}

// NewAsyncRelay creates an AsyncRelay. canExecute may be nil.
func NewAsyncRelay(execute func(ctx context.Context, param any) error, canExecute func(param any) bool) *AsyncRelay {
	return &AsyncRelay{execute: execute, canExecute: canExecute}
}

// ExecuteAsync runs the relay's function and waits for it.
func (r *AsyncRelay) ExecuteAsync(ctx context.Context, param any) error {
	if r.execute == nil {
		return nil
	}
	return r.execute(ctx, param)
}

// CanExecute evaluates the relay's guard.
func (r *AsyncRelay) CanExecute(param any) bool {
	if r.canExecute == nil {
		return true
	}
	return r.canExecute(param)
}

// RaiseCanExecuteChanged tells observers to re-query CanExecute.
func (r *AsyncRelay) RaiseCanExecuteChanged() {
	r.raiseCanExecuteChanged(r)
}
