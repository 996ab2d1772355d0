package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/composite/internal/command"
	"github.com/Iron-Ham/composite/internal/util"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.theme.Box.Render(m.renderChildren()))
	b.WriteString("\n")
	b.WriteString(m.renderState())
	b.WriteString("\n")
	if len(m.history) > 0 {
		b.WriteString(m.theme.Muted.Render(strings.Join(m.history, "\n")))
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderHelp())
	}
	return util.FitLines(b.String(), m.width)
}

func (m *Model) renderHeader() string {
	title := m.theme.Title.Render(m.comp.Name())
	badge := m.theme.Badge.Render(m.comp.Mode().String())
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", badge)
}

func (m *Model) renderChildren() string {
	rows := make([]string, 0, len(m.children))
	for i, c := range m.children {
		label := fmt.Sprintf("%-10s", c.name)
		state := m.theme.Enabled.Render("enabled")
		name := m.theme.Label.Render(label)
		if !c.enabled.Load() {
			state = m.theme.Disabled.Render("disabled")
			name = m.theme.Disabled.Render(label)
		}
		if !m.comp.Contains(c.cmd) {
			state = m.theme.Muted.Render("detached")
		}
		if t, ok := c.cmd.(*command.Toggle); ok && t.IsChecked() {
			state += m.theme.Muted.Render(" (checked)")
		}
		kind := m.theme.Muted.Render(fmt.Sprintf("%-7s", c.kind))
		rows = append(rows, fmt.Sprintf("[%d] %s %s %s", i+1, name, kind, state))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderState() string {
	var verdict string
	switch {
	case m.comp.IsDisposed():
		verdict = m.theme.Error.Render("disposed")
	case m.comp.CanExecute(nil):
		verdict = m.theme.Enabled.Render("can execute")
	default:
		verdict = m.theme.Disabled.Render("cannot execute")
	}

	line := fmt.Sprintf("%s  %s", verdict, m.theme.Muted.Render(fmt.Sprintf("%d children", m.comp.Count())))
	if m.running {
		line += "  " + m.spinner.View() + m.theme.Running.Render(" running")
	}
	if m.lastKey != "" {
		line += "  " + m.theme.Muted.Render("last key: ") + m.theme.HelpKey.Render(m.lastKey)
	}
	if m.status != "" {
		style := m.theme.Muted
		if m.failed {
			style = m.theme.Error
		}
		line += "\n" + style.Render(m.status)
	}
	return line
}

func (m *Model) renderHelp() string {
	grouped := m.keys.BindingsByCategory()
	var lines []string
	for _, cat := range m.keys.Categories() {
		parts := make([]string, 0, len(grouped[cat]))
		for _, binding := range grouped[cat] {
			parts = append(parts, m.theme.HelpKey.Render(binding.String())+" "+binding.Description)
		}
		lines = append(lines, m.theme.Muted.Render(cat+":")+" "+strings.Join(parts, "  "))
	}
	return strings.Join(lines, "\n")
}
