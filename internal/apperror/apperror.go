// Package apperror defines the error taxonomy shared by every layer.
//
// ERROR KINDS:
// Repositories and services return *AppError values that wrap one of the
// sentinels below. Handlers never inspect messages; they check the kind with
// errors.Is and translate it to a status code. Anything that is not an
// *AppError is treated as an internal failure.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrAtomicity  = errors.New("atomicity failure")
)

type AppError struct {
	Err     error  // sentinel (or joined sentinels) identifying the kind
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing row. The id is formatted with %v so both
// integer ids and session ids read naturally.
func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %v", resource, id),
	}
}

// ConflictMessage is Conflict with a caller supplied message, used when the
// conflicting key is not an id (a duplicate email, a referenced catalog row).
func ConflictMessage(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// AtomicityFailure reports that a composite write was rolled back because one
// of its children referenced a missing row. It matches both ErrAtomicity and
// ErrNotFound, since the root cause is always a missing reference.
func AtomicityFailure(resource string, id any) *AppError {
	return &AppError{
		Err:     errors.Join(ErrAtomicity, ErrNotFound),
		Message: fmt.Sprintf("%s not found with id %v; nothing was saved", resource, id),
	}
}
