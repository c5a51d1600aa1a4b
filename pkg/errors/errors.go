// Package errors provides typed errors for the application
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the delivery layer
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindPermission
	KindUnavailable
	KindInternal
)

// String returns a short label used in logs and metrics
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// baseError is the base implementation for all error types
type baseError struct {
	msg    string
	cause  error
	origin error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// Is reports whether target is the sentinel this error was wrapped from
func (e *baseError) Is(target error) bool {
	return e.origin != nil && target == e.origin
}

// ValidationError represents rejected input
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// NotFoundError represents a missing entity
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// PermissionError represents a missing privilege
type PermissionError struct {
	baseError
}

// NewPermissionError creates a new PermissionError
func NewPermissionError(msg string) *PermissionError {
	return &PermissionError{baseError{msg: msg}}
}

// UnavailableError represents a dependency that could not be reached
type UnavailableError struct {
	baseError
}

// NewUnavailableError creates a new UnavailableError
func NewUnavailableError(msg string) *UnavailableError {
	return &UnavailableError{baseError{msg: msg}}
}

// Wrap attaches cause to a copy of a typed error, keeping its kind
func Wrap(err error, cause error) error {
	if cause == nil {
		return err
	}

	switch e := err.(type) {
	case *ValidationError:
		return &ValidationError{baseError{msg: e.msg, cause: cause, origin: err}}
	case *NotFoundError:
		return &NotFoundError{baseError{msg: e.msg, cause: cause, origin: err}}
	case *PermissionError:
		return &PermissionError{baseError{msg: e.msg, cause: cause, origin: err}}
	case *UnavailableError:
		return &UnavailableError{baseError{msg: e.msg, cause: cause, origin: err}}
	default:
		return fmt.Errorf("%w: %w", err, cause)
	}
}

// KindOf returns the kind of the first typed error in the chain; untyped errors are internal
func KindOf(err error) Kind {
	switch {
	case IsValidationError(err):
		return KindValidation
	case IsNotFoundError(err):
		return KindNotFound
	case IsPermissionError(err):
		return KindPermission
	case IsUnavailableError(err):
		return KindUnavailable
	default:
		return KindInternal
	}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFoundError checks if error is a NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsPermissionError checks if error is a PermissionError
func IsPermissionError(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

// IsUnavailableError checks if error is an UnavailableError
func IsUnavailableError(err error) bool {
	var target *UnavailableError
	return errors.As(err, &target)
}
