// Package errors defines the typed error taxonomy shared by the repository,
// cache, and auth layers. Each error carries a Kind that maps onto a fault
// class: client faults (validation, conflict, unauthorized, not found) and
// server faults (store failures). Cache failures never become errors at all;
// they are absorbed where they happen.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation decisions.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindStore        Kind = "STORE"
)

// Error is the concrete error type produced by this module.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ClientFault reports whether the error is attributable to the caller.
// Store failures are the only server-fault kind in this taxonomy.
func (e *Error) ClientFault() bool {
	return e.Kind != KindStore
}

// NewValidation creates a validation error.
func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound creates a not-found error for the named resource.
func NewNotFound(resource string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", resource, id)}
}

// NewConflict creates a business-rule conflict error.
func NewConflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NewUnauthorized creates an authentication rejection.
func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewStore wraps an underlying store failure. These are always propagated,
// never swallowed; callers may retry.
func NewStore(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindStore, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err (or anything it wraps) is an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func IsValidation(err error) bool   { return IsKind(err, KindValidation) }
func IsNotFound(err error) bool     { return IsKind(err, KindNotFound) }
func IsConflict(err error) bool     { return IsKind(err, KindConflict) }
func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }
func IsStore(err error) bool        { return IsKind(err, KindStore) }
