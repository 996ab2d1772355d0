// Package event provides the pub-sub bus that commands use to announce
// availability and membership changes.
//
// Every command in this module owns a [Bus]. A composite subscribes to the
// bus of each child it holds and re-publishes the child's
// [CanExecuteChangedEvent] on its own bus, so an observer bound to the
// composite only ever watches one bus.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Types
//
//   - [CanExecuteChangedEvent] ("command.can_execute_changed"): re-query the guard
//   - [CountChangedEvent] ("command.count_changed"): composite membership changed
//   - [CheckedChangedEvent] ("command.checked_changed"): a toggle flipped
//   - [ExecutedEvent] ("command.executed"): a key dispatcher ran a command
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called
// synchronously on the publishing goroutine, inline with the call that
// caused the event, and are protected against panics.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	id := bus.Subscribe(event.TypeCanExecuteChanged, func(e event.Event) {
//	    refresh()
//	})
//	defer bus.Unsubscribe(id)
//
//	bus.Publish(event.NewCanExecuteChangedEvent(cmd))
package event
