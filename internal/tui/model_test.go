package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/composite/internal/command"
	"github.com/Iron-Ham/composite/internal/config"
	"github.com/Iron-Ham/composite/internal/errors"
)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Name == "" {
		opts.Name = "demo"
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	t.Cleanup(m.Composite().Dispose)
	return m
}

func press(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

// runToCompletion executes a run command and feeds its result back.
func runToCompletion(t *testing.T, m *Model, cmd tea.Cmd) runFinishedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a run command, got nil")
	}
	msg, ok := cmd().(runFinishedMsg)
	if !ok {
		t.Fatalf("run command returned %T, want runFinishedMsg", msg)
	}
	m.Update(msg)
	return msg
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, Options{Mode: command.ModeAny})

	comp := m.Composite()
	if comp.Count() != 3 {
		t.Errorf("Count() = %d, want 3", comp.Count())
	}
	if comp.Mode() != command.ModeAny {
		t.Errorf("Mode() = %v, want %v", comp.Mode(), command.ModeAny)
	}
	if comp.Name() != "demo" {
		t.Errorf("Name() = %q, want %q", comp.Name(), "demo")
	}
	if !comp.CanExecute(nil) {
		t.Error("CanExecute() = false, want true with all children enabled")
	}
	if cmd := m.Init(); cmd == nil {
		t.Error("Init() should start the spinner")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Composite.Mode = "first"
	cfg.Composite.ExecuteTimeoutMs = 1500
	cfg.TUI.Theme = "mono"

	opts := OptionsFromConfig(cfg, nil)
	if opts.Mode != command.ModeFirst {
		t.Errorf("Mode = %v, want %v", opts.Mode, command.ModeFirst)
	}
	if opts.RunTimeout != 1500*time.Millisecond {
		t.Errorf("RunTimeout = %v, want 1.5s", opts.RunTimeout)
	}
	if opts.AsyncDelay != 800*time.Millisecond {
		t.Errorf("AsyncDelay = %v, want 800ms", opts.AsyncDelay)
	}
	if opts.Theme != "mono" || !opts.ShowHelp || opts.Name != "composite" {
		t.Errorf("opts = %+v, want mono theme, help shown, default name", opts)
	}
}

func TestModel_ToggleChild(t *testing.T) {
	m := newTestModel(t, Options{})

	if cmd := press(m, "2"); cmd != nil {
		t.Errorf("toggle key returned a command")
	}
	if m.children[1].enabled.Load() {
		t.Fatal("child 2 should be disabled")
	}
	if m.Composite().CanExecute(nil) {
		t.Error("CanExecute() = true in all mode with a disabled child")
	}
	if m.lastKey != "2" {
		t.Errorf("lastKey = %q, want %q", m.lastKey, "2")
	}

	press(m, "2")
	if !m.Composite().CanExecute(nil) {
		t.Error("CanExecute() = false after re-enabling the child")
	}
}

func TestModel_CycleMode(t *testing.T) {
	m := newTestModel(t, Options{})

	want := []command.Mode{command.ModeAny, command.ModeFirst, command.ModeAll}
	for _, mode := range want {
		press(m, "m")
		if got := m.Composite().Mode(); got != mode {
			t.Fatalf("Mode() = %v, want %v", got, mode)
		}
	}
	if !strings.Contains(m.status, "all") {
		t.Errorf("status = %q, want mode announcement", m.status)
	}
}

func TestModel_Run(t *testing.T) {
	m := newTestModel(t, Options{})

	cmd := press(m, "enter")
	if !m.running {
		t.Fatal("running should be true after enter")
	}

	// A second run cannot start while one is in flight
	if next := press(m, "enter"); next != nil {
		t.Error("enter while running should not start another run")
	}
	if !strings.Contains(m.status, "unavailable") {
		t.Errorf("status = %q, want unavailable notice", m.status)
	}

	msg := runToCompletion(t, m, cmd)
	if msg.err != nil {
		t.Fatalf("run error = %v", msg.err)
	}
	if m.running {
		t.Error("running should be false after the run finished")
	}
	if !strings.Contains(m.status, "run 1 finished") {
		t.Errorf("status = %q, want finished notice", m.status)
	}
	toggle := m.children[2].cmd.(*command.Toggle)
	if !toggle.IsChecked() {
		t.Error("toggle child should have flipped during the run")
	}
}

func TestModel_RunReportsChildren(t *testing.T) {
	m := newTestModel(t, Options{})

	var mu sync.Mutex
	var got []string
	m.send = func(msg tea.Msg) {
		if ran, ok := msg.(childRanMsg); ok {
			mu.Lock()
			got = append(got, ran.name)
			mu.Unlock()
		}
	}

	runToCompletion(t, m, press(m, "enter"))

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != "validate" || got[1] != "transfer" {
		t.Errorf("reported children = %v, want [validate transfer]", got)
	}
}

func TestModel_RunSkipsDisabledInAnyMode(t *testing.T) {
	m := newTestModel(t, Options{Mode: command.ModeAny})
	press(m, "3")

	runToCompletion(t, m, press(m, "enter"))

	toggle := m.children[2].cmd.(*command.Toggle)
	if toggle.IsChecked() {
		t.Error("disabled toggle child should have been skipped")
	}
}

func TestModel_Cancel(t *testing.T) {
	m := newTestModel(t, Options{AsyncDelay: time.Hour})

	if cmd := press(m, "c"); cmd != nil {
		t.Error("cancel with no run in flight should do nothing")
	}

	cmd := press(m, "enter")
	press(m, "c")

	msg := runToCompletion(t, m, cmd)
	if !errors.IsCanceled(msg.err) {
		t.Fatalf("run error = %v, want cancellation", msg.err)
	}
	if m.failed {
		t.Error("a canceled run should not be reported as a failure")
	}
	if !strings.Contains(m.status, "canceled") {
		t.Errorf("status = %q, want canceled notice", m.status)
	}
}

func TestModel_RunTimeout(t *testing.T) {
	m := newTestModel(t, Options{AsyncDelay: time.Hour, RunTimeout: 10 * time.Millisecond})

	msg := runToCompletion(t, m, press(m, "enter"))
	if !errors.Is(msg.err, context.DeadlineExceeded) {
		t.Fatalf("run error = %v, want deadline exceeded", msg.err)
	}
	if !strings.Contains(m.status, "run 1 canceled") {
		t.Errorf("status = %q, want canceled notice", m.status)
	}
}

func TestModel_Dispose(t *testing.T) {
	m := newTestModel(t, Options{})

	press(m, "d")
	comp := m.Composite()
	if !comp.IsDisposed() {
		t.Fatal("composite should be disposed")
	}
	if comp.Count() != 0 {
		t.Errorf("Count() = %d, want 0", comp.Count())
	}

	if cmd := press(m, "enter"); cmd != nil {
		t.Error("a disposed composite should not run")
	}
	press(m, "d")
	if !strings.Contains(m.status, "Dispose unavailable") {
		t.Errorf("status = %q, want dispose unavailable", m.status)
	}
	if view := m.View(); !strings.Contains(view, "disposed") || !strings.Contains(view, "detached") {
		t.Errorf("View() should show the disposed composite:\n%s", view)
	}
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := newTestModel(t, Options{})
			cmd := press(m, key)
			if cmd == nil {
				t.Fatal("quit key returned no command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("quit key should return tea.Quit")
			}
			if m.View() != "" {
				t.Error("View() should be empty after quitting")
			}
		})
	}
}

func TestModel_UnboundKey(t *testing.T) {
	m := newTestModel(t, Options{})
	if cmd := press(m, "z"); cmd != nil {
		t.Error("unbound key returned a command")
	}
	if m.status != "" {
		t.Errorf("status = %q, want empty", m.status)
	}
}

func TestModel_Messages(t *testing.T) {
	m := newTestModel(t, Options{})

	m.Update(availabilityMsg{})
	m.Update(availabilityMsg{})
	if m.signals != 2 {
		t.Errorf("signals = %d, want 2", m.signals)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 {
		t.Errorf("width = %d, want 120", m.width)
	}

	for i := 0; i < maxHistory+3; i++ {
		m.Update(childRanMsg{name: "validate"})
	}
	if len(m.history) != maxHistory {
		t.Errorf("len(history) = %d, want %d", len(m.history), maxHistory)
	}

	m.Update(runFinishedMsg{run: 7, err: errors.New("disk full")})
	if !m.failed || !strings.Contains(m.status, "run 7 failed: disk full") {
		t.Errorf("status = %q failed = %v, want failure notice", m.status, m.failed)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, Options{ShowHelp: true, Theme: "mono"})

	view := m.View()
	for _, want := range []string{"demo", "all", "validate", "transfer", "notify", "can execute", "3 children", "Toggle validate", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	press(m, "?")
	if strings.Contains(m.View(), "Toggle validate") {
		t.Error("help should be hidden after toggling it off")
	}

	press(m, "1")
	if !strings.Contains(m.View(), "cannot execute") {
		t.Errorf("View() should show the blocked composite:\n%s", m.View())
	}
}
