package command

import (
	"sync"

	"github.com/Iron-Ham/composite/internal/event"
)

// Toggle is a synchronous command that flips a boolean each time it runs.
type Toggle struct {
	notifier

	mu        sync.Mutex
	checked   bool
	canToggle func(param any) bool
}

// NewToggle creates a Toggle in the given state. canToggle may be nil.
func NewToggle(checked bool, canToggle func(param any) bool) *Toggle {
	return &Toggle{checked: checked, canToggle: canToggle}
}

// Execute flips the state and publishes event.CheckedChangedEvent.
func (t *Toggle) Execute(any) error {
	t.mu.Lock()
	t.checked = !t.checked
	checked := t.checked
	t.mu.Unlock()

	t.Events().Publish(event.NewCheckedChangedEvent(t, checked))
	return nil
}

// CanExecute evaluates the toggle's guard.
func (t *Toggle) CanExecute(param any) bool {
	if t.canToggle == nil {
		return true
	}
	return t.canToggle(param)
}

// IsChecked returns the current state.
func (t *Toggle) IsChecked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.checked
}

// SetChecked sets the state, publishing event.CheckedChangedEvent if it
// changed.
func (t *Toggle) SetChecked(checked bool) {
	t.mu.Lock()
	changed := t.checked != checked
	t.checked = checked
	t.mu.Unlock()

	if changed {
		t.Events().Publish(event.NewCheckedChangedEvent(t, checked))
	}
}

// RaiseCanExecuteChanged tells observers to re-query CanExecute.
func (t *Toggle) RaiseCanExecuteChanged() {
	t.raiseCanExecuteChanged(t)
}
