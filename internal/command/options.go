package command

import (
	"github.com/Iron-Ham/composite/internal/logging"
)

// Option configures a Composite.
type Option func(*config)

type config struct {
	name   string
	mode   Mode
	logger *logging.Logger
}

// WithName sets the name used to tag log entries.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithMode sets the initial can-execute mode.
// Invalid modes are replaced with ModeAll.
func WithMode(mode Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithLogger sets the logger for the composite.
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
