// Package serrors defines the semantic error taxonomy shared across the
// service. Errors carry a kind sentinel (not found, forbidden, conflict, ...)
// that the transport layer maps onto HTTP status codes, an optional wrapped
// cause, and, for validation failures, the name of the offending field.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

// kind is an unexported implementation of Kind used as a sentinel value for a
// semantic error category.
type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. Kinds are comparable and can be used with errors.Is/As through the
// serrors.Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

// The kinds below cover every failure class the directory service reports.
var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden indicates the actor is authenticated but lacks the rights
	// to perform the operation.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrValidation indicates an entity field value violates its constraint.
	ErrValidation = NewKind("VALIDATION")
	// ErrConflict indicates a uniqueness violation (duplicate email, duplicate
	// amenity name, second review on the same place).
	ErrConflict = NewKind("CONFLICT")
	// ErrInternal indicates an unexpected server-side failure.
	ErrInternal = NewKind("INTERNAL")
)

// Error is a semantic error carrying a kind sentinel, an optional wrapped
// cause, an optional message and an optional field name. It fully supports
// errors.Is/errors.As and unwrapping: matching succeeds against either the
// kind sentinel or the wrapped cause.
type Error struct {
	kind  Kind
	err   error
	msg   string
	field string
}

// With constructs a semantic error with the given kind and a human-readable
// message. Use Wrap to also record a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a semantic error with the given kind that wraps the
// provided cause.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// OnField constructs a validation error naming the field whose constraint was
// violated. The message should describe the constraint itself, e.g.
// "must be between 1 and 5".
func OnField(field string, msgFmt string, args ...any) *Error {
	return &Error{kind: ErrValidation, field: field, msg: fmt.Sprintf(msgFmt, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.field != "":
		return e.field + ": " + e.msg
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped cause, enabling errors.Unwrap/Is/As to traverse
// the chain.
func (e *Error) Unwrap() error { return e.err }

// Is matches against either the kind sentinel or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches against either the kind sentinel or the wrapped cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Field returns the name of the field a validation error refers to, or the
// empty string.
func (e *Error) Field() string { return e.field }
