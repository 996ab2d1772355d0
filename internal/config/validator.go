package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/composite/internal/command"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "composite.mode")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidModes returns the list of valid can-execute modes
func ValidModes() []string {
	modes := command.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}

// ValidThemes returns the list of valid TUI themes
func ValidThemes() []string {
	return []string{"default", "mono"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateComposite()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateComposite validates the CompositeConfig
func (c *Config) validateComposite() []ValidationError {
	var errors []ValidationError

	if c.Composite.Mode != "" && !slices.Contains(ValidModes(), c.Composite.Mode) {
		errors = append(errors, ValidationError{
			Field:   "composite.mode",
			Value:   c.Composite.Mode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidModes(), ", ")),
		})
	}

	if c.Composite.ExecuteTimeoutMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "composite.execute_timeout_ms",
			Value:   c.Composite.ExecuteTimeoutMs,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if c.TUI.AsyncDelayMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "tui.async_delay_ms",
			Value:   c.TUI.AsyncDelayMs,
			Message: "must be non-negative",
		})
	}

	// Keep the demo responsive
	const maxAsyncDelayMs = 60000
	if c.TUI.AsyncDelayMs > maxAsyncDelayMs {
		errors = append(errors, ValidationError{
			Field:   "tui.async_delay_ms",
			Value:   c.TUI.AsyncDelayMs,
			Message: fmt.Sprintf("exceeds maximum of %d", maxAsyncDelayMs),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
