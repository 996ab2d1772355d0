package command

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/composite/internal/errors"
)

// Mode selects how a composite combines the guards of its children.
type Mode uint8

const (
	// ModeAll requires every child to be executable. It is the default.
	ModeAll Mode = iota
	// ModeAny requires at least one executable child; unavailable children
	// are skipped during execution.
	ModeAny
	// ModeFirst only consults the first child; execution stops at the first
	// unavailable child.
	ModeFirst
)

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeAll, ModeAny, ModeFirst}
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeAny:
		return "any"
	case ModeFirst:
		return "first"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m <= ModeFirst
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return (m + 1) % (ModeFirst + 1)
}

// ParseMode converts a configuration name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return ModeAll, nil
	case "any":
		return ModeAny, nil
	case "first":
		return ModeFirst, nil
	default:
		return ModeAll, fmt.Errorf("%w: %q", errors.ErrUnknownMode, s)
	}
}
