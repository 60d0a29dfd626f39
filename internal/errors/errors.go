// Package errors provides standardized error types for the renewd tool.
//
// The errors package defines domain-specific error types that enable
// structured error handling and consistent error messages throughout
// the application.
//
// # Error Types
//
// RenewalError is the primary error type, containing:
//   - Code: Categorizes the error (CONFIG, STORE, ISSUANCE, etc.)
//   - Message: Human-readable error description
//   - Lineage: The lineage name involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
// Common error scenarios have pre-defined sentinel errors:
//
//	errors.ErrLineageNotFound      // lineage doesn't exist
//	errors.ErrVersionNotFound      // version absent from the archive
//	errors.ErrAuthenticatorUnknown // authenticator not registered
//
// # Error Checking
//
// Use errors.Is for sentinel error comparison:
//
//	if errors.Is(err, errors.ErrVersionNotFound) {
//	    // Handle missing version
//	}
//
// Use errors.As for type assertion:
//
//	var rerr *errors.RenewalError
//	if errors.As(err, &rerr) {
//	    fmt.Printf("Error code: %s, Lineage: %s\n", rerr.Code, rerr.Lineage)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"     // Resource not found
	ErrCodeConfig        ErrorCode = "CONFIG"        // Renewal configuration error
	ErrCodeStore         ErrorCode = "STORE"         // Lineage store error
	ErrCodeAuthenticator ErrorCode = "AUTHENTICATOR" // Authenticator plugin error
	ErrCodeIssuance      ErrorCode = "ISSUANCE"      // CA issuance error
	ErrCodeNotify        ErrorCode = "NOTIFY"        // Notification delivery error
	ErrCodeInternal      ErrorCode = "INTERNAL"      // Internal/unexpected error
)

// RenewalError represents a structured error with context about the operation.
type RenewalError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Lineage string    // Lineage name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *RenewalError) Error() string {
	if e.Lineage != "" && e.Err != nil {
		return fmt.Sprintf("lineage %s: %s: %v", e.Lineage, e.Message, e.Err)
	}
	if e.Lineage != "" {
		return fmt.Sprintf("lineage %s: %s", e.Lineage, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *RenewalError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *RenewalError) Is(target error) bool {
	t, ok := target.(*RenewalError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrLineageNotFound indicates the requested lineage does not exist.
	ErrLineageNotFound = &RenewalError{Code: ErrCodeNotFound, Message: "lineage not found"}

	// ErrVersionNotFound indicates a version is absent from the archive.
	ErrVersionNotFound = &RenewalError{Code: ErrCodeNotFound, Message: "version not found"}

	// ErrAuthenticatorUnknown indicates the named authenticator is not registered.
	ErrAuthenticatorUnknown = &RenewalError{Code: ErrCodeAuthenticator, Message: "unknown authenticator"}

	// ErrConfigInvalid indicates a renewal configuration is invalid or corrupt.
	ErrConfigInvalid = &RenewalError{Code: ErrCodeConfig, Message: "invalid renewal configuration"}
)

// NotFound creates an error for a lineage that doesn't exist.
func NotFound(lineage string) error {
	return &RenewalError{
		Code:    ErrCodeNotFound,
		Message: "lineage not found",
		Lineage: lineage,
	}
}

// Config creates a configuration error with a custom message.
func Config(msg string) error {
	return &RenewalError{
		Code:    ErrCodeConfig,
		Message: msg,
	}
}

// Configf creates a configuration error with a formatted message.
func Configf(format string, args ...interface{}) error {
	return &RenewalError{
		Code:    ErrCodeConfig,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &RenewalError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapLineage creates an error with lineage context and underlying error.
func WrapLineage(code ErrorCode, lineage, msg string, err error) error {
	return &RenewalError{
		Code:    code,
		Message: msg,
		Lineage: lineage,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
