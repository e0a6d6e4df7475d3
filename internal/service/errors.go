// Package service holds the booking domain logic: request validation,
// time-slot conflict detection, the booking lifecycle and the sauna status
// rule.  Services operate on store interfaces so the persistence layer can
// be swapped for mocks in tests.
package service

import "fmt"

// The error kinds below let the handler layer map failures onto HTTP status
// codes without string matching: ValidationError and ConflictError become
// 400, NotFoundError 404, and StorageError 500.  Services fail fast and
// return the first violated rule.

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError reports a business-rule conflict such as an overlapping
// time slot, an out-of-order sauna, or deleting a booking in progress.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// StorageError wraps an underlying store failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func storagef(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
