package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes store errors for CLI output and JSON envelopes.
type ErrorCode string

const (
	// ErrCodeValidation indicates a required field was empty after
	// normalization. The operation is aborted before any mutation.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeNotFound indicates the referenced id does not exist.
	// Storage is left unmodified.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeMalformedStorage indicates persisted content could not be
	// decoded. By default this is downgraded to an empty collection and
	// logged, never returned from an operation.
	ErrCodeMalformedStorage ErrorCode = "MALFORMED_STORAGE"
)

// ValidationError reports empty required fields on add.
type ValidationError struct {
	// Fields lists the offending field names, in declaration order.
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field(s) empty: %s", strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports an operation against a non-existent id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("grievance #%d not found", e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// MalformedStorageError reports undecodable persisted content.
//
// The file backend never returns this from an operation: it logs the
// error and continues with an empty collection, preserving the original
// tool's corruption tolerance. It is exposed as a distinct type so
// callers that want to surface the condition (gripe validate) can.
type MalformedStorageError struct {
	Path string
	Err  error
}

func (e *MalformedStorageError) Error() string {
	return fmt.Sprintf("malformed grievance file %s: %v", e.Path, e.Err)
}

func (e *MalformedStorageError) Unwrap() error {
	return e.Err
}

// IsMalformedStorage reports whether err is a MalformedStorageError.
func IsMalformedStorage(err error) bool {
	var me *MalformedStorageError
	return errors.As(err, &me)
}

// CodeFor maps an error to its ErrorCode, or "IO" for anything else.
func CodeFor(err error) ErrorCode {
	switch {
	case IsValidation(err):
		return ErrCodeValidation
	case IsNotFound(err):
		return ErrCodeNotFound
	case IsMalformedStorage(err):
		return ErrCodeMalformedStorage
	}
	return "IO"
}
