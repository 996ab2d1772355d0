// Package event defines event types for decoupling commands from the
// observers that render or aggregate them.
package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "command.count_changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeCanExecuteChanged = "command.can_execute_changed"
	TypeCountChanged      = "command.count_changed"
	TypeCheckedChanged    = "command.checked_changed"
	TypeExecuted          = "command.executed"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Command Events
// -----------------------------------------------------------------------------

// CanExecuteChangedEvent is emitted when a command's guard result may have
// changed. It carries no verdict; observers re-query CanExecute.
type CanExecuteChangedEvent struct {
	baseEvent
	Source any // The command whose availability changed
}

// NewCanExecuteChangedEvent creates a CanExecuteChangedEvent.
func NewCanExecuteChangedEvent(source any) CanExecuteChangedEvent {
	return CanExecuteChangedEvent{
		baseEvent: newBaseEvent(TypeCanExecuteChanged),
		Source:    source,
	}
}

// CountChangedEvent is emitted when a composite's child count changes.
type CountChangedEvent struct {
	baseEvent
	Source any // The composite whose membership changed
	Count  int // Child count after the change
}

// NewCountChangedEvent creates a CountChangedEvent.
func NewCountChangedEvent(source any, count int) CountChangedEvent {
	return CountChangedEvent{
		baseEvent: newBaseEvent(TypeCountChanged),
		Source:    source,
		Count:     count,
	}
}

// CheckedChangedEvent is emitted when a toggle command flips state.
type CheckedChangedEvent struct {
	baseEvent
	Source  any
	Checked bool
}

// NewCheckedChangedEvent creates a CheckedChangedEvent.
func NewCheckedChangedEvent(source any, checked bool) CheckedChangedEvent {
	return CheckedChangedEvent{
		baseEvent: newBaseEvent(TypeCheckedChanged),
		Source:    source,
		Checked:   checked,
	}
}

// ExecutedEvent is emitted by a dispatcher after it ran a bound command.
type ExecutedEvent struct {
	baseEvent
	Source any    // The command that ran
	Key    string // Human-readable key that triggered it
	Err    error  // Error returned by the command, nil on success
}

// NewExecutedEvent creates an ExecutedEvent.
func NewExecutedEvent(source any, key string, err error) ExecutedEvent {
	return ExecutedEvent{
		baseEvent: newBaseEvent(TypeExecuted),
		Source:    source,
		Key:       key,
		Err:       err,
	}
}

// Succeeded returns true if the executed command returned no error.
func (e ExecutedEvent) Succeeded() bool {
	return e.Err == nil
}
