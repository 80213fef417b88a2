package apperrors

import (
	"errors"
	"fmt"
)

// ErrStoreNotFound reports that the backing store holds no data yet. The
// first read of a catalog treats this as an empty catalog, not a failure.
var ErrStoreNotFound = errors.New("store: not found")

// ValidationError signals bad user input: empty fields, non-positive
// amounts, or a selection that does not resolve against the catalog.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that the target of an identity-based mutation does
// not exist in the current catalog.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// StoreError wraps a read or write failure against the catalog or
// appointment-log store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// PublishError wraps a failed call to the external calendar.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string { return fmt.Sprintf("calendar publish: %v", e.Err) }

func (e *PublishError) Unwrap() error { return e.Err }

// TimezoneError signals a wall-clock time that does not exist in the
// configured zone, e.g. inside a DST spring-forward gap.
type TimezoneError struct {
	Msg string
}

func (e *TimezoneError) Error() string { return e.Msg }
