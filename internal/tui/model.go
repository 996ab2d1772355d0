package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/composite/internal/command"
	"github.com/Iron-Ham/composite/internal/config"
	"github.com/Iron-Ham/composite/internal/errors"
	"github.com/Iron-Ham/composite/internal/event"
	"github.com/Iron-Ham/composite/internal/keymap"
	"github.com/Iron-Ham/composite/internal/logging"
	"github.com/Iron-Ham/composite/internal/tui/styles"
)

// maxHistory is the number of recent activity lines kept for display.
const maxHistory = 6

// Options configures the demo model.
type Options struct {
	Name       string
	Mode       command.Mode
	Theme      string
	ShowHelp   bool
	AsyncDelay time.Duration
	RunTimeout time.Duration
	Logger     *logging.Logger
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config, logger *logging.Logger) Options {
	return Options{
		Name:       cfg.Composite.Name,
		Mode:       cfg.Composite.ParsedMode(),
		Theme:      cfg.TUI.Theme,
		ShowHelp:   cfg.TUI.ShowHelp,
		AsyncDelay: cfg.TUI.AsyncDelay(),
		RunTimeout: cfg.Composite.ExecuteTimeout(),
		Logger:     logger,
	}
}

// Model is the bubbletea model for the composite command demo. It owns one
// composite of three children and drives it from key bindings.
type Model struct {
	opts     Options
	theme    styles.Theme
	logger   *logging.Logger
	comp     *command.Composite
	children []*demoChild
	keys     *keymap.Keymap
	spinner  spinner.Model

	// send delivers messages from outside the event loop; nil in tests
	send func(tea.Msg)

	running  bool
	cancel   context.CancelFunc
	pending  tea.Cmd
	runs     int
	signals  int
	status   string
	failed   bool
	lastKey  string
	history  []string
	showHelp bool
	width    int
	quitting bool
}

// NewModel creates the demo model and its composite.
func NewModel(opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}

	m := &Model{
		opts:     opts,
		theme:    styles.New(opts.Theme),
		logger:   opts.Logger.With("component", "tui"),
		showHelp: opts.ShowHelp,
	}

	m.children = newDemoChildren(opts.AsyncDelay, m.reportChild)
	cmds := make([]command.Command, len(m.children))
	for i, c := range m.children {
		cmds[i] = c.cmd
	}

	comp, err := command.New(cmds,
		command.WithName(opts.Name),
		command.WithMode(opts.Mode),
		command.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, err
	}
	m.comp = comp

	if err := m.bindKeys(); err != nil {
		return nil, err
	}

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.theme.Running),
	)
	return m, nil
}

// Composite returns the composite driven by the model.
func (m *Model) Composite() *command.Composite {
	return m.comp
}

func (m *Model) bindKeys() error {
	m.keys = keymap.New("demo", m.opts.Logger)

	for i, c := range m.children {
		child := c
		err := m.keys.BindSpec(fmt.Sprint(i+1), command.NewRelay(func(any) error {
			child.setEnabled(!child.enabled.Load())
			return nil
		}, nil), "Toggle "+child.name, "Children")
		if err != nil {
			return err
		}
	}

	bindings := []struct {
		spec        string
		cmd         command.Command
		description string
		category    string
	}{
		{"enter", command.NewRelay(m.run, m.canRun), "Run composite", "Execution"},
		{"c", command.NewRelay(m.cancelRun, m.isRunning), "Cancel run", "Execution"},
		{"m", command.NewRelay(m.cycleMode, nil), "Cycle mode", "Composite"},
		{"d", command.NewRelay(m.dispose, m.canDispose), "Dispose", "Composite"},
		{"?", command.NewRelay(m.toggleHelp, nil), "Toggle help", "General"},
		{"q", command.NewRelay(m.quit, nil), "Quit", "General"},
	}
	for _, b := range bindings {
		if err := m.keys.BindSpec(b.spec, b.cmd, b.description, b.category); err != nil {
			return err
		}
	}

	m.keys.Events().Subscribe(event.TypeExecuted, func(e event.Event) {
		if exec, ok := e.(event.ExecutedEvent); ok {
			m.lastKey = exec.Key
		}
	})
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case availabilityMsg:
		m.signals++
		return m, nil

	case childRanMsg:
		m.record(msg.name + " ran")
		return m, nil

	case runFinishedMsg:
		m.finishRun(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		_ = m.quit(nil)
		return tea.Quit
	}

	binding, cmd, ok := m.keys.Lookup(msg)
	if !ok {
		return nil
	}
	if !command.CanExecute(cmd, nil) {
		m.setStatus(binding.Description+" unavailable", false)
		return nil
	}

	m.pending = nil
	if _, err := m.keys.Dispatch(context.Background(), msg, nil); err != nil {
		m.setStatus(errors.Describe(err), true)
	}
	next := m.pending
	m.pending = nil
	return next
}

func (m *Model) canRun(any) bool {
	return !m.running && m.comp.CanExecute(nil)
}

func (m *Model) isRunning(any) bool {
	return m.running
}

func (m *Model) canDispose(any) bool {
	return !m.comp.IsDisposed()
}

// run starts an execution run of the composite as a tea.Cmd.
func (m *Model) run(any) error {
	m.runs++
	var ctx context.Context
	var cancel context.CancelFunc
	if m.opts.RunTimeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), m.opts.RunTimeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	m.cancel = cancel
	m.running = true
	m.setStatus(fmt.Sprintf("run %d started", m.runs), false)

	run, comp := m.runs, m.comp
	m.pending = func() tea.Msg {
		start := time.Now()
		err := comp.ExecuteAsync(ctx, nil)
		cancel()
		return runFinishedMsg{run: run, err: err, elapsed: time.Since(start)}
	}
	return nil
}

func (m *Model) finishRun(msg runFinishedMsg) {
	m.running = false
	m.cancel = nil

	switch {
	case msg.err == nil:
		m.setStatus(fmt.Sprintf("run %d finished in %s", msg.run, msg.elapsed.Round(time.Millisecond)), false)
	case errors.IsCanceled(msg.err):
		m.setStatus(fmt.Sprintf("run %d canceled", msg.run), false)
	default:
		m.setStatus(fmt.Sprintf("run %d failed: %s", msg.run, errors.Describe(msg.err)), true)
	}
	m.record(m.status)
}

func (m *Model) cancelRun(any) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

func (m *Model) cycleMode(any) error {
	next := m.comp.Mode().Next()
	if err := m.comp.SetMode(next); err != nil {
		return err
	}
	m.setStatus("mode "+next.String(), false)
	return nil
}

func (m *Model) dispose(any) error {
	m.comp.Dispose()
	m.setStatus("composite disposed", false)
	m.record("disposed")
	return nil
}

func (m *Model) toggleHelp(any) error {
	m.showHelp = !m.showHelp
	return nil
}

func (m *Model) quit(any) error {
	if m.cancel != nil {
		m.cancel()
	}
	m.quitting = true
	m.pending = tea.Quit
	return nil
}

// reportChild is called by demo children as they run, possibly off the
// event loop.
func (m *Model) reportChild(name string) {
	m.logger.Debug("child ran", "child", name)
	if m.send != nil {
		m.send(childRanMsg{name: name})
	}
}

func (m *Model) setStatus(status string, failed bool) {
	m.status = status
	m.failed = failed
}

func (m *Model) record(line string) {
	m.history = append(m.history, line)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}
