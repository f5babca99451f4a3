package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures for the tool boundary. Every error that
// leaves the engine carries exactly one kind; callers map it to a
// transport-appropriate status signal.
type ErrorKind int

const (
	ErrValidation ErrorKind = iota + 1
	ErrNotFound
	ErrConflict
	ErrPayloadTooLarge
	ErrUpstream
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrValidation:
		return "validation"
	case ErrNotFound:
		return "not_found"
	case ErrConflict:
		return "conflict"
	case ErrPayloadTooLarge:
		return "payload_too_large"
	case ErrUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is a classified failure with an optional wrapped cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a classified error.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapErr classifies an existing error. A nil cause yields nil.
func WrapErr(kind ErrorKind, cause error, message string) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf extracts the kind from an error chain. Unclassified errors
// count as internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrInternal
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
