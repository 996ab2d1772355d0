package command

import (
	"context"
	"reflect"

	"github.com/Iron-Ham/composite/internal/errors"
	"github.com/Iron-Ham/composite/internal/event"
)

// Command is a handle to an executable object. A usable command implements
// Executor or AsyncExecutor and may also implement Guard and Notifier.
// Commands are compared by identity, so they must be comparable values;
// pointer types are the normal choice.
type Command any

// Executor is a synchronous command.
type Executor interface {
	Execute(param any) error
}

// AsyncExecutor is a command whose unit of work may block. ExecuteAsync
// returns when the work has finished and should return ctx.Err() when it
// stops early because ctx was canceled.
type AsyncExecutor interface {
	ExecuteAsync(ctx context.Context, param any) error
}

// Guard reports whether a command may currently execute.
// Commands without a Guard can always execute.
type Guard interface {
	CanExecute(param any) bool
}

// Notifier exposes the bus on which a command publishes
// event.CanExecuteChangedEvent.
type Notifier interface {
	Events() *event.Bus
}

// Validate reports whether cmd can be held by a composite or bound to a key.
func Validate(cmd Command) error {
	if cmd == nil {
		return errors.ErrInvalidCommand
	}
	// The dynamic contents matter: a struct with an interface field holding
	// a slice has a comparable type but panics on ==.
	if !reflect.ValueOf(cmd).Comparable() {
		return errors.ErrInvalidCommand
	}
	switch cmd.(type) {
	case AsyncExecutor, Executor:
		return nil
	default:
		return errors.ErrInvalidCommand
	}
}

// CanExecute evaluates the guard of cmd. A command without a guard can
// always execute.
func CanExecute(cmd Command, param any) bool {
	if g, ok := cmd.(Guard); ok {
		return g.CanExecute(param)
	}
	return true
}

// Invoke runs cmd once and waits for it to finish. The asynchronous form is
// preferred when cmd implements both. Errors are returned unmodified.
func Invoke(ctx context.Context, cmd Command, param any) error {
	switch c := cmd.(type) {
	case AsyncExecutor:
		return c.ExecuteAsync(ctx, param)
	case Executor:
		return c.Execute(param)
	default:
		return errors.ErrInvalidCommand
	}
}

// eventsOf returns the bus of cmd, or nil if it does not publish one.
func eventsOf(cmd Command) *event.Bus {
	if n, ok := cmd.(Notifier); ok {
		return n.Events()
	}
	return nil
}
