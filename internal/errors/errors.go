// Package errors provides centralized error definitions for the composite
// command library. It defines sentinel errors, the CommandError type used by
// membership operations, and classification helpers.
//
// # Usage
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrDisposed) { ... }
//
//	var cmdErr *errors.CommandError
//	if errors.As(err, &cmdErr) {
//	    fmt.Println(cmdErr.Op)
//	}
//
//	if errors.IsCanceled(err) { ... }
//
// Errors returned by child commands during execution are never wrapped by
// this package; callers see them exactly as the child produced them.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Command-related sentinel errors
var (
	// ErrDisposed indicates a mutation was attempted on a disposed composite.
	ErrDisposed = New("command is disposed")
	// ErrInvalidCommand indicates a value cannot be used as a child command.
	ErrInvalidCommand = New("invalid command")
	// ErrUnknownMode indicates an unrecognized can-execute mode name.
	ErrUnknownMode = New("unknown can-execute mode")
)

// Binding-related sentinel errors
var (
	// ErrUnboundKey indicates that no command is bound to a key.
	ErrUnboundKey = New("key is not bound")
	// ErrDuplicateBinding indicates that a key is already bound.
	ErrDuplicateBinding = New("key is already bound")
)

// General sentinel errors
var (
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// CommandError
// -----------------------------------------------------------------------------

// CommandError reports a failed membership operation on a composite.
//
// Example:
//
//	err := errors.NewCommandError("add", errors.ErrDisposed)
//	fmt.Println(err) // "command add: command is disposed"
type CommandError struct {
	// Op is the operation that failed ("add", "remove", "clear", "new").
	Op    string
	cause error
}

// NewCommandError creates a new CommandError.
func NewCommandError(op string, cause error) *CommandError {
	return &CommandError{Op: op, cause: cause}
}

// Error returns the formatted error message.
func (e *CommandError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("command %s failed", e.Op)
	}
	return fmt.Sprintf("command %s: %v", e.Op, e.cause)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *CommandError) Is(target error) bool {
	if _, ok := target.(*CommandError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsCanceled reports whether err is a cancellation rather than a failure.
// Context cancellation, deadline expiry, and ErrCanceled all count.
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrCanceled)
}

// IsDisposed reports whether err was caused by using a disposed command.
func IsDisposed(err error) bool {
	return errors.Is(err, ErrDisposed)
}

// Describe returns a short, user-facing description of err suitable for a
// status line. Cancellations are reported without the underlying detail.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case IsCanceled(err):
		return "canceled"
	case IsDisposed(err):
		return "disposed"
	default:
		return err.Error()
	}
}
