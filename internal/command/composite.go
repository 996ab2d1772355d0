package command

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Iron-Ham/composite/internal/errors"
	"github.com/Iron-Ham/composite/internal/event"
	"github.com/Iron-Ham/composite/internal/logging"
)

// Composite groups child commands behind a single command. It implements
// Executor, AsyncExecutor, Guard and Notifier, so a composite can itself be
// the child of another composite.
//
// The child list is copy-on-write: every mutation installs a new immutable
// slice and every execution run iterates the slice that was current when
// the run started. Children may therefore add or remove members of the
// composite that is executing them; the change is seen by the next run.
//
// Notifications are published synchronously on Events(), after the mutation
// that caused them has been installed.
type Composite struct {
	name   string
	logger *logging.Logger
	events *event.Bus

	mode     atomic.Uint32
	children atomic.Pointer[[]Command]
	disposed atomic.Bool
	runs     atomic.Uint64

	mu   sync.Mutex         // serializes mutations
	subs map[Command]string // child -> subscription ID on the child's bus
}

// New creates a composite holding children in order. Duplicates are
// dropped, keeping the first occurrence. Each accepted child's
// availability changes are forwarded to the composite's bus.
func New(children []Command, opts ...Option) (*Composite, error) {
	cfg := config{mode: ModeAll}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.mode.Valid() {
		cfg.mode = ModeAll
	}
	if cfg.logger == nil {
		cfg.logger = logging.NopLogger()
	}
	if cfg.name == "" {
		cfg.name = "composite"
	}

	c := &Composite{
		name:   cfg.name,
		logger: cfg.logger.WithCommand(cfg.name),
		events: event.NewBus(),
		subs:   make(map[Command]string),
	}
	c.mode.Store(uint32(cfg.mode))

	accepted := make([]Command, 0, len(children))
	for _, child := range children {
		if err := c.validateChild(child); err != nil {
			c.unsubscribeAll(accepted)
			return nil, errors.NewCommandError("new", err)
		}
		if slices.Contains(accepted, child) {
			continue
		}
		accepted = append(accepted, child)
		c.subscribe(child)
	}
	c.children.Store(&accepted)

	c.logger.Debug("composite created", "children", len(accepted), "mode", cfg.mode.String())
	return c, nil
}

// Name returns the name used in log entries.
func (c *Composite) Name() string {
	return c.name
}

// Events returns the bus on which the composite publishes
// event.CanExecuteChangedEvent and event.CountChangedEvent.
func (c *Composite) Events() *event.Bus {
	return c.events
}

// Mode returns the current can-execute mode.
func (c *Composite) Mode() Mode {
	return Mode(c.mode.Load())
}

// SetMode changes the can-execute mode. Changing to a different mode
// publishes an availability change.
func (c *Composite) SetMode(mode Mode) error {
	if !mode.Valid() {
		return errors.ErrUnknownMode
	}
	if Mode(c.mode.Swap(uint32(mode))) != mode {
		c.logger.Debug("mode changed", "mode", mode.String())
		c.raiseCanExecuteChanged()
	}
	return nil
}

// IsDisposed reports whether Dispose has been called.
func (c *Composite) IsDisposed() bool {
	return c.disposed.Load()
}

// Count returns the number of children.
func (c *Composite) Count() int {
	return len(c.snapshot())
}

// ToArray returns a copy of the children in order. The copy is not
// affected by later mutations.
func (c *Composite) ToArray() []Command {
	return slices.Clone(c.snapshot())
}

// Contains reports whether child is held by the composite.
func (c *Composite) Contains(child Command) bool {
	if Validate(child) != nil {
		return false
	}
	return slices.Contains(c.snapshot(), child)
}

// TryAdd appends child. It returns false without changing anything if the
// child is already present.
func (c *Composite) TryAdd(child Command) (bool, error) {
	c.mu.Lock()
	if c.disposed.Load() {
		c.mu.Unlock()
		return false, errors.NewCommandError("add", errors.ErrDisposed)
	}
	if err := c.validateChild(child); err != nil {
		c.mu.Unlock()
		return false, errors.NewCommandError("add", err)
	}

	current := c.snapshot()
	if slices.Contains(current, child) {
		c.mu.Unlock()
		return false, nil
	}

	next := make([]Command, len(current), len(current)+1)
	copy(next, current)
	next = append(next, child)
	c.subscribe(child)
	c.children.Store(&next)
	c.mu.Unlock()

	c.logger.Debug("child added", "count", len(next))
	c.raiseCountChanged(len(next))
	c.raiseCanExecuteChanged()
	return true, nil
}

// TryRemove removes child. It returns false if the child is not present.
func (c *Composite) TryRemove(child Command) (bool, error) {
	c.mu.Lock()
	if c.disposed.Load() {
		c.mu.Unlock()
		return false, errors.NewCommandError("remove", errors.ErrDisposed)
	}
	if Validate(child) != nil {
		c.mu.Unlock()
		return false, nil
	}

	current := c.snapshot()
	idx := slices.Index(current, child)
	if idx < 0 {
		c.mu.Unlock()
		return false, nil
	}

	next := slices.Delete(slices.Clone(current), idx, idx+1)
	c.unsubscribe(child)
	c.children.Store(&next)
	c.mu.Unlock()

	c.logger.Debug("child removed", "count", len(next))
	c.raiseCountChanged(len(next))
	c.raiseCanExecuteChanged()
	return true, nil
}

// Clear removes every child in one step.
func (c *Composite) Clear() error {
	c.mu.Lock()
	if c.disposed.Load() {
		c.mu.Unlock()
		return errors.NewCommandError("clear", errors.ErrDisposed)
	}
	removed := c.detachAll()
	c.mu.Unlock()

	if removed > 0 {
		c.logger.Debug("children cleared", "removed", removed)
		c.raiseCountChanged(0)
		c.raiseCanExecuteChanged()
	}
	return nil
}

// Dispose removes every child and makes the composite permanently
// unusable for mutation. Calling it again has no effect.
func (c *Composite) Dispose() {
	c.mu.Lock()
	if c.disposed.Load() {
		c.mu.Unlock()
		return
	}
	removed := c.detachAll()
	c.disposed.Store(true)
	c.mu.Unlock()

	c.logger.Debug("composite disposed", "removed", removed)
	if removed > 0 {
		c.raiseCountChanged(0)
		c.raiseCanExecuteChanged()
	}
}

// CanExecute combines the guards of the children according to Mode.
// A disposed composite cannot execute. Over an empty composite, ModeAll and
// ModeFirst report true and ModeAny reports false.
func (c *Composite) CanExecute(param any) bool {
	if c.disposed.Load() {
		return false
	}

	children := c.snapshot()
	switch c.Mode() {
	case ModeAny:
		return slices.ContainsFunc(children, func(child Command) bool {
			return CanExecute(child, param)
		})
	case ModeFirst:
		if len(children) == 0 {
			return true
		}
		return CanExecute(children[0], param)
	default:
		for _, child := range children {
			if !CanExecute(child, param) {
				return false
			}
		}
		return true
	}
}

// Execute runs the children without a cancellation context.
func (c *Composite) Execute(param any) error {
	return c.ExecuteAsync(context.Background(), param)
}

// ExecuteAsync runs the children of the current snapshot one at a time, in
// order. ctx is checked before each child is considered, so a cancellation
// is reported even when every remaining child would be skipped. Each
// child's guard is then re-evaluated just before it runs: in ModeFirst an
// unavailable child ends the run successfully, in ModeAny it is skipped,
// and in ModeAll the child runs regardless. ctx is passed to asynchronous
// children. The first error, including a cancellation, ends the run and is
// returned unmodified.
func (c *Composite) ExecuteAsync(ctx context.Context, param any) error {
	snapshot := c.snapshot()
	mode := c.Mode()
	log := c.logger.WithRun(c.runs.Add(1)).WithMode(mode.String())

	log.Debug("execution started", "children", len(snapshot))
	for i, child := range snapshot {
		if err := ctx.Err(); err != nil {
			log.Debug("execution canceled", "index", i)
			return err
		}

		if mode != ModeAll && !CanExecute(child, param) {
			if mode == ModeFirst {
				log.Debug("execution stopped at unavailable child", "index", i)
				return nil
			}
			log.Debug("child skipped", "index", i)
			continue
		}

		if err := Invoke(ctx, child, param); err != nil {
			if errors.IsCanceled(err) {
				log.Debug("execution canceled", "index", i, "error", err.Error())
			} else {
				log.Warn("execution failed", "index", i, "error", err.Error())
			}
			return err
		}
	}
	log.Debug("execution finished")
	return nil
}

// snapshot returns the current immutable child slice. Callers must not
// modify it.
func (c *Composite) snapshot() []Command {
	if p := c.children.Load(); p != nil {
		return *p
	}
	return nil
}

func (c *Composite) validateChild(child Command) error {
	if err := Validate(child); err != nil {
		return err
	}
	if child == Command(c) {
		return errors.ErrInvalidCommand
	}
	return nil
}

// detachAll unsubscribes from and removes every child, returning how many
// there were. Caller must hold c.mu.
func (c *Composite) detachAll() int {
	current := c.snapshot()
	c.unsubscribeAll(current)
	empty := []Command{}
	c.children.Store(&empty)
	return len(current)
}

// subscribe forwards child's availability changes. Caller must hold c.mu
// or own c exclusively.
func (c *Composite) subscribe(child Command) {
	bus := eventsOf(child)
	if bus == nil {
		return
	}
	c.subs[child] = bus.Subscribe(event.TypeCanExecuteChanged, c.onChildCanExecuteChanged)
}

// unsubscribe removes the forwarding subscription for child.
func (c *Composite) unsubscribe(child Command) {
	id, ok := c.subs[child]
	if !ok {
		return
	}
	delete(c.subs, child)
	if bus := eventsOf(child); bus != nil {
		bus.Unsubscribe(id)
	}
}

func (c *Composite) unsubscribeAll(children []Command) {
	for _, child := range children {
		c.unsubscribe(child)
	}
}

func (c *Composite) onChildCanExecuteChanged(event.Event) {
	c.raiseCanExecuteChanged()
}

func (c *Composite) raiseCanExecuteChanged() {
	c.events.Publish(event.NewCanExecuteChangedEvent(c))
}

func (c *Composite) raiseCountChanged(count int) {
	c.events.Publish(event.NewCountChangedEvent(c, count))
}
