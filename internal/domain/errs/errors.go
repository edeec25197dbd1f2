package errs

import (
	"errors"
	"fmt"
)

// Kind classifies domain failures so transports can map them to status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidIdentifier
	KindNotFound
	KindDegenerateInput
	KindValidationFailure
	KindComputationFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindNotFound:
		return "not_found"
	case KindDegenerateInput:
		return "degenerate_input"
	case KindValidationFailure:
		return "validation_failure"
	case KindComputationFailure:
		return "computation_failure"
	default:
		return "unknown"
	}
}

// Error is a classified domain error.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error without a cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, op, format string, a ...interface{}) *Error {
	return New(kind, op, fmt.Sprintf(format, a...))
}

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, op string, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the human readable part of a classified error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
