package book

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes validation failures.
type ErrorCode string

const (
	// CodeEmptyField indicates a required field was left blank.
	CodeEmptyField ErrorCode = "EMPTY_FIELD"

	// CodeInvalidYear indicates year text did not parse as an integer.
	CodeInvalidYear ErrorCode = "INVALID_YEAR"

	// CodeReadOnly indicates an edit targeted the id column.
	CodeReadOnly ErrorCode = "READ_ONLY"

	// CodeUnknownField indicates a column name or index that does not exist.
	CodeUnknownField ErrorCode = "UNKNOWN_FIELD"

	// CodeInvalidID indicates text that is not a positive record id.
	CodeInvalidID ErrorCode = "INVALID_ID"
)

// ErrNotFound is returned when a record id matches no stored row.
var ErrNotFound = errors.New("book not found")

// ValidationError reports input that was rejected before any mutation.
type ValidationError struct {
	Code    ErrorCode
	Field   string
	Message string

	// Details maps field name to problem when several fields failed at once.
	Details map[string]string

	cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying parse error, if any.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// StorageError wraps a failure of the underlying database engine.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the engine error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFound returns ErrNotFound annotated with the missing id.
func NotFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStorage reports whether err is, or wraps, a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
