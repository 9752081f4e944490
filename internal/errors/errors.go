// Package errors provides sentinel errors and error types for schach.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrPrecondition marks a violated internal invariant. It is never
	// returned; it is the value carried by panics from the rules engine.
	ErrPrecondition = errors.New("precondition violated")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidPosition indicates a square name that is not on the board.
	ErrInvalidPosition = errors.New("invalid board position")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownSession indicates a game session id that is not being hosted.
	ErrUnknownSession = errors.New("unknown game session")

	// ErrInvalidMessage indicates a malformed render-bridge message.
	ErrInvalidMessage = errors.New("invalid message")
)

// PositionError wraps errors with board context: the operation that failed
// and the square it was applied to.
type PositionError struct {
	Err    error  // The underlying error
	Op     string // Operation name, e.g. "apply movement"
	Square string // Square the operation was applied to (if known)
}

// Error returns a formatted error message including all available context.
func (e *PositionError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Square != "" {
		parts = append(parts, "square "+e.Square)
	}
	context := strings.Join(parts, " ")
	if e.Err == nil {
		return context
	}
	if context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", context, e.Err)
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// SessionError wraps errors with the id of the game session they occurred in.
type SessionError struct {
	Err     error
	Session string
}

// Error returns a formatted error message.
func (e *SessionError) Error() string {
	if e.Err == nil {
		return "session " + e.Session
	}
	return fmt.Sprintf("session %s: %v", e.Session, e.Err)
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// Precondition builds the panic value for a violated invariant. The result
// wraps ErrPrecondition so recovered values can be matched with errors.Is.
func Precondition(op, square, format string, args ...interface{}) error {
	return &PositionError{
		Err:    Wrap(ErrPrecondition, fmt.Sprintf(format, args...)),
		Op:     op,
		Square: square,
	}
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
