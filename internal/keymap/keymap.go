package keymap

import (
	"context"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/composite/internal/command"
	"github.com/Iron-Ham/composite/internal/errors"
	"github.com/Iron-Ham/composite/internal/event"
	"github.com/Iron-Ham/composite/internal/logging"
)

type entry struct {
	binding KeyBinding
	cmd     command.Command
}

// Keymap holds an ordered set of key bindings, each bound to a command.
// It is safe for concurrent use. The first binding that matches a key
// message wins.
type Keymap struct {
	name   string
	logger *logging.Logger
	events *event.Bus

	mu      sync.RWMutex
	entries []entry
}

// New creates an empty keymap. A nil logger disables logging.
func New(name string, logger *logging.Logger) *Keymap {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Keymap{
		name:   name,
		logger: logger.With("keymap", name),
		events: event.NewBus(),
	}
}

// Name returns the keymap name.
func (km *Keymap) Name() string {
	return km.name
}

// Events returns the bus on which Dispatch publishes event.ExecutedEvent.
func (km *Keymap) Events() *event.Bus {
	return km.events
}

// Bind associates binding with cmd. It fails with errors.ErrInvalidCommand
// for a value that cannot run, and with errors.ErrDuplicateBinding when the
// same key is already bound.
func (km *Keymap) Bind(binding KeyBinding, cmd command.Command) error {
	if err := command.Validate(cmd); err != nil {
		return err
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if slices.ContainsFunc(km.entries, func(e entry) bool { return e.binding.SameKey(binding) }) {
		return errors.ErrDuplicateBinding
	}
	km.entries = append(km.entries, entry{binding: binding, cmd: cmd})
	return nil
}

// BindSpec parses spec with ParseKeySpec and binds the result to cmd.
func (km *Keymap) BindSpec(spec string, cmd command.Command, description, category string) error {
	binding, err := ParseKeySpec(spec)
	if err != nil {
		return errors.Join(errors.ErrInvalidInput, err)
	}
	binding.Description = description
	binding.Category = category
	return km.Bind(binding, cmd)
}

// Unbind removes the binding for the same key as binding. It reports
// whether a binding was removed.
func (km *Keymap) Unbind(binding KeyBinding) bool {
	km.mu.Lock()
	defer km.mu.Unlock()

	idx := slices.IndexFunc(km.entries, func(e entry) bool { return e.binding.SameKey(binding) })
	if idx < 0 {
		return false
	}
	km.entries = slices.Delete(km.entries, idx, idx+1)
	return true
}

// Lookup returns the first binding matching msg and its command.
func (km *Keymap) Lookup(msg tea.KeyMsg) (KeyBinding, command.Command, bool) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	for _, e := range km.entries {
		if e.binding.Matches(msg) {
			return e.binding, e.cmd, true
		}
	}
	return KeyBinding{}, nil, false
}

// Dispatch runs the command bound to msg. handled is false when no binding
// matches. A matching command whose guard reports false is not run and
// reports handled with a nil error. Otherwise the command's error is
// returned unmodified and an event.ExecutedEvent is published.
func (km *Keymap) Dispatch(ctx context.Context, msg tea.KeyMsg, param any) (handled bool, err error) {
	binding, cmd, ok := km.Lookup(msg)
	if !ok {
		return false, nil
	}
	return true, km.run(ctx, binding, cmd, param)
}

// Trigger runs the command bound to the key described by spec, as if the
// key had been pressed. It fails with errors.ErrUnboundKey when nothing is
// bound to that key.
func (km *Keymap) Trigger(ctx context.Context, spec string, param any) error {
	want, err := ParseKeySpec(spec)
	if err != nil {
		return errors.Join(errors.ErrInvalidInput, err)
	}

	km.mu.RLock()
	idx := slices.IndexFunc(km.entries, func(e entry) bool { return e.binding.SameKey(want) })
	var e entry
	if idx >= 0 {
		e = km.entries[idx]
	}
	km.mu.RUnlock()

	if idx < 0 {
		return errors.ErrUnboundKey
	}
	return km.run(ctx, e.binding, e.cmd, param)
}

func (km *Keymap) run(ctx context.Context, binding KeyBinding, cmd command.Command, param any) error {
	key := binding.String()
	if !command.CanExecute(cmd, param) {
		km.logger.Debug("binding unavailable", "key", key)
		return nil
	}

	err := command.Invoke(ctx, cmd, param)
	if err != nil {
		km.logger.Warn("bound command failed", "key", key, "error", err.Error())
	} else {
		km.logger.Debug("bound command executed", "key", key)
	}
	km.events.Publish(event.NewExecutedEvent(cmd, key, err))
	return err
}

// Bindings returns the bindings in the order they were added.
func (km *Keymap) Bindings() []KeyBinding {
	km.mu.RLock()
	defer km.mu.RUnlock()

	result := make([]KeyBinding, len(km.entries))
	for i, e := range km.entries {
		result[i] = e.binding
	}
	return result
}

// Categories returns all unique binding categories in first-seen order.
func (km *Keymap) Categories() []string {
	var categories []string
	for _, b := range km.Bindings() {
		if b.Category != "" && !slices.Contains(categories, b.Category) {
			categories = append(categories, b.Category)
		}
	}
	return categories
}

// BindingsByCategory returns bindings grouped by category. Bindings without
// a category are grouped under "Other".
func (km *Keymap) BindingsByCategory() map[string][]KeyBinding {
	result := make(map[string][]KeyBinding)
	for _, b := range km.Bindings() {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		result[cat] = append(result[cat], b)
	}
	return result
}
