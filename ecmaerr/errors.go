// Package ecmaerr defines the failure taxonomy for ecmakit.
//
// Every error returned by the codecs, the number parser, the config loader or
// the CLI maps to exactly one FailureClass, which determines the exit code and
// lets vector suites check classification rather than only "did it fail".
package ecmaerr

import (
	"errors"
	"fmt"
)

// FailureClass is a stable failure category.
type FailureClass string

const (
	InvalidRadix  FailureClass = "INVALID_RADIX"
	InvalidNumber FailureClass = "INVALID_NUMBER"
	URIMalformed  FailureClass = "URI_MALFORMED"
	InvalidUTF8   FailureClass = "INVALID_UTF8"
	Base64Length  FailureClass = "BASE64_LENGTH"
	Base64Content FailureClass = "BASE64_CONTENT"
	InvalidConfig FailureClass = "INVALID_CONFIG"
	BoundExceeded FailureClass = "BOUND_EXCEEDED"
	CLIUsage      FailureClass = "CLI_USAGE"
	InternalIO    FailureClass = "INTERNAL_IO"
	InternalError FailureClass = "INTERNAL_ERROR"
)

// ExitCode returns the process exit code for this failure class.
func (fc FailureClass) ExitCode() int {
	switch fc {
	case InternalIO, InternalError:
		return 10
	default:
		return 2
	}
}

// Error is the structured error type for all ecmakit failures.
// Offset is the byte position in the input, or -1 when it does not apply.
type Error struct {
	Class   FailureClass
	Offset  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("ecmaerr: %s at byte %d: %s", e.Class, e.Offset, msg)
	}
	return fmt.Sprintf("ecmaerr: %s: %s", e.Class, msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given class and message.
func New(class FailureClass, offset int, message string) *Error {
	return &Error{Class: class, Offset: offset, Message: message}
}

// Newf is New with a format string.
func Newf(class FailureClass, offset int, format string, args ...any) *Error {
	return &Error{Class: class, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(class FailureClass, offset int, message string, cause error) *Error {
	return &Error{Class: class, Offset: offset, Message: message, Cause: cause}
}

// ClassOf reports the class of the first *Error in err's chain.
func ClassOf(err error) (FailureClass, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return "", false
}
