// Package domainerrors provides coded errors for the service layer.
//
// Services return these so transport code can map failures to responses
// without string matching. Stores return sentinel errors instead (see
// pkg/platform/sentinel); services translate at the boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks input that is well-formed but not acceptable,
	// including state transitions attempted from a state where they are
	// not defined.
	CodeValidation Code = "validation"

	// CodeBadRequest marks malformed input.
	CodeBadRequest Code = "bad_request"

	// CodeNotFound marks a missing referenced entity.
	CodeNotFound Code = "not_found"

	// CodeConflict marks a rejected command: a guarded transition blocked
	// by an open task, or a uniqueness violation.
	CodeConflict Code = "conflict"

	// CodeUnauthorized marks a command executed without an acting user.
	CodeUnauthorized Code = "unauthorized"

	// CodeInvariantViolation marks a broken aggregate invariant. These are
	// programming or data errors, not user input problems.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeTimeout marks a command aborted by context cancellation.
	CodeTimeout Code = "timeout"

	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "internal_error"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a domain error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
