package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors, per the six error-handling buckets:
// config/selection errors are fatal at startup, the rest are per-host and
// transient.
const (
	ErrConfig    = "CONFIG"
	ErrSelection = "SELECTION"
	ErrTransport = "TRANSPORT"
	ErrRemote    = "REMOTE"
	ErrParse     = "PARSE"
	ErrInternal  = "INTERNAL"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrInternal code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrInternal,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface with formatted "✗ message" output.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var ansimonErr *Error
	if errors.As(err, &ansimonErr) {
		return ansimonErr.Code == code
	}
	return false
}

// ExitError carries a process exit code through cobra's error return path:
// RunE returns one instead of printing its own message, so Execute can
// propagate the code without re-wrapping an already-reported failure.
type ExitError struct {
	Code int
}

// NewExitError wraps an exit code a subcommand wants Execute to return
// as-is, bypassing the "✗ message" structured error rendering.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetExitCode extracts the code from an ExitError, if err is one.
func GetExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// Truncate trims s to its last line and caps it at its final n characters,
// matching §7's rule that per-host error strings are a single truncated line.
func Truncate(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	last := lines[len(lines)-1]
	if len(last) > n {
		return last[len(last)-n:]
	}
	return last
}
