// Package keymap binds keyboard input to commands. A Keymap matches
// bubbletea key messages against declarative bindings and runs the bound
// command through the same guard-then-invoke step a composite uses.
package keymap

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Modifier represents keyboard modifiers (Ctrl, Alt, Shift).
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << iota
	ModAlt
	ModShift
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var s string
	if m&ModCtrl != 0 {
		s += "ctrl+"
	}
	if m&ModAlt != 0 {
		s += "alt+"
	}
	if m&ModShift != 0 {
		s += "shift+"
	}
	return s
}

// KeyBinding describes a key that can trigger a command.
type KeyBinding struct {
	// KeyType is the key for this binding.
	// For special keys, use tea.KeyType constants (e.g., tea.KeyEnter).
	// For rune keys, use tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	// Special keys match on type alone
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}

	// A zero Rune is a catch-all for any rune
	if kb.Rune == 0 {
		return true
	}

	return msg.Runes[0] == kb.Rune
}

// SameKey reports whether kb and other are triggered by the same key,
// ignoring their descriptions.
func (kb KeyBinding) SameKey(other KeyBinding) bool {
	return kb.KeyType == other.KeyType && kb.Rune == other.Rune && kb.Modifiers == other.Modifiers
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}

	switch kb.Rune {
	case 0:
		return prefix + "any"
	case ' ':
		return prefix + "space"
	default:
		return prefix + string(kb.Rune)
	}
}

// namedKeys maps key spec names to their tea.KeyType.
var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"esc":       tea.KeyEsc,
	"escape":    tea.KeyEsc,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pageup":    tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"pagedown":  tea.KeyPgDown,
}

// ParseKeySpec parses a key specification such as "ctrl+r", "shift+tab",
// "alt+x", "enter" or "j" into a KeyBinding without description.
func ParseKeySpec(spec string) (KeyBinding, error) {
	var mods Modifier
	remaining := spec
	for {
		switch {
		case len(remaining) > 5 && strings.HasPrefix(remaining, "ctrl+"):
			mods |= ModCtrl
			remaining = remaining[5:]
		case len(remaining) > 4 && strings.HasPrefix(remaining, "alt+"):
			mods |= ModAlt
			remaining = remaining[4:]
		case len(remaining) > 6 && strings.HasPrefix(remaining, "shift+"):
			mods |= ModShift
			remaining = remaining[6:]
		default:
			return parseKey(spec, remaining, mods)
		}
	}
}

func parseKey(spec, key string, mods Modifier) (KeyBinding, error) {
	if key == "tab" && mods&ModShift != 0 {
		return KeyBinding{KeyType: tea.KeyShiftTab, Modifiers: mods &^ ModShift}, nil
	}
	if keyType, ok := namedKeys[key]; ok {
		return KeyBinding{KeyType: keyType, Modifiers: mods}, nil
	}

	// ctrl+letter is its own key type
	if mods&ModCtrl != 0 && len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' {
		return KeyBinding{
			KeyType:   tea.KeyCtrlA + tea.KeyType(key[0]-'a'),
			Modifiers: mods &^ ModCtrl,
		}, nil
	}

	if r := []rune(key); len(r) == 1 {
		return KeyBinding{KeyType: tea.KeyRunes, Rune: r[0], Modifiers: mods}, nil
	}

	return KeyBinding{}, fmt.Errorf("unrecognized key spec: %s", spec)
}
