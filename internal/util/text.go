// Package util holds small text helpers shared by the CLI and the TUI.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// TruncateRunes shortens s to at most maxLen runes, ending in Ellipsis when
// it was cut. It ignores ANSI escape codes; use FitLines for styled text.
func TruncateRunes(s string, maxLen int) string {
	if maxLen <= len(Ellipsis) {
		return Ellipsis
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-len(Ellipsis)]) + Ellipsis
}

// FitLines truncates every line of a rendered block to width visual
// columns, keeping ANSI styling intact. A width of zero or less leaves the
// block unchanged.
func FitLines(block string, width int) string {
	if width <= 0 {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, Ellipsis)
		}
	}
	return strings.Join(lines, "\n")
}
