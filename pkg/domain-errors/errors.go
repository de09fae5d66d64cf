// Package domainerrors provides code-classified errors shared across all
// domain modules. Services attach a Code when crossing a module boundary so
// callers can branch on the class of failure without string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for cross-module handling.
type Code string

const (
	// CodeInvalidInput marks malformed domain input: an unsupported exam
	// system, a grade outside its scale, a non-enumerated grade letter.
	// Rejected before any scoring happens.
	CodeInvalidInput Code = "invalid_input"

	// CodeBadRequest marks a structurally invalid request at the transport
	// boundary (bad JSON, missing fields).
	CodeBadRequest Code = "bad_request"

	// CodeNotFound marks a lookup miss: unknown session, unknown program.
	// Never conflated with validation failures.
	CodeNotFound Code = "not_found"

	// CodeUnavailable marks a degraded collaborator (catalog, market data,
	// enrichment). The pipeline logs it and continues with neutral
	// defaults; it is never surfaced as a top-level failure.
	CodeUnavailable Code = "unavailable"

	// CodeInternal marks a fatal pipeline failure. The run aborts and the
	// session transitions to failed.
	CodeInternal Code = "internal"

	// CodeInvariantViolation marks a broken domain invariant, e.g. a
	// verdict score outside [0,100] or a non-monotonic session transition.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is the concrete coded error type. Construct via New or Wrap.
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

// New creates a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message. Returns nil if err is nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the outermost Code in err's chain, or CodeInternal when
// err carries no code.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var coded *Error
		if !errors.As(err, &coded) {
			return false
		}
		if coded.Code == code {
			return true
		}
		err = coded.Err
	}
	return false
}

// Is is a readability alias for HasCode used at transport boundaries.
func Is(err error, code Code) bool { return HasCode(err, code) }
