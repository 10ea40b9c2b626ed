// Package domain defines the core domain models for keyman.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "KM-KEY-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// UserMessage returns the text shown to a CLI user: the details when
// present, the generic message otherwise.
func (e *DomainError) UserMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Message
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsArgumentError reports whether err is caused by how the tool was invoked
// rather than by the state of the keyfile.
func IsArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidArgumentFormat) ||
		errors.Is(err, ErrUnknownAction)
}

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates a missing, conflicting or unsupported argument.
	ErrInvalidArgument = NewDomainError("KM-ARG-1001", "invalid argument")

	// ErrInvalidArgumentFormat indicates a field=value argument with a bad shape.
	ErrInvalidArgumentFormat = NewDomainError("KM-ARG-1004", "invalid argument format")

	// ErrUnknownAction indicates the requested action does not exist.
	ErrUnknownAction = NewDomainError("KM-ARG-1005", "unknown action")
)

// ============================================================================
// Key Errors (KEY)
// ============================================================================

var (
	// ErrKeyNotFound indicates no record matched the lookup.
	ErrKeyNotFound = NewDomainError("KM-KEY-4040", "key not found")

	// ErrKeyConflict indicates a record with the same unique field already exists.
	ErrKeyConflict = NewDomainError("KM-KEY-4090", "key already exists")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrCorruptKeyfile indicates the backing file could not be decoded.
	ErrCorruptKeyfile = NewDomainError("KM-SYS-5002", "corrupt keyfile")

	// ErrKeyfileLocked indicates another process holds the keyfile lock.
	ErrKeyfileLocked = NewDomainError("KM-SYS-5003", "keyfile is locked by another process")

	// ErrKeyfileReadOnly indicates a save through a manager opened with a shared lock.
	ErrKeyfileReadOnly = NewDomainError("KM-SYS-5004", "keyfile was opened read-only")
)
