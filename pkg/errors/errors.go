package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Reconciliation errors
	ErrNotFound         ErrorCode = "NOT_FOUND"
	ErrIsSymlink        ErrorCode = "IS_SYMLINK"
	ErrInvalidContainer ErrorCode = "INVALID_CONTAINER"
	ErrAlreadyExists    ErrorCode = "ALREADY_EXISTS"

	// Execution errors
	ErrExternalTool ErrorCode = "EXTERNAL_TOOL"
	ErrIO           ErrorCode = "IO"
	ErrVerify       ErrorCode = "VERIFY"
)

// StowsaveError represents a structured error with code and details
type StowsaveError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StowsaveError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StowsaveError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *StowsaveError) Is(target error) bool {
	var targetErr *StowsaveError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StowsaveError with the given code and message
func New(code ErrorCode, message string) *StowsaveError {
	return &StowsaveError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StowsaveError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StowsaveError {
	return &StowsaveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StowsaveError
func Wrap(err error, code ErrorCode, message string) *StowsaveError {
	if err == nil {
		return nil
	}
	return &StowsaveError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StowsaveError {
	if err == nil {
		return nil
	}
	return &StowsaveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StowsaveError) WithDetail(key string, value interface{}) *StowsaveError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var stowErr *StowsaveError
	if errors.As(err, &stowErr) {
		return stowErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StowsaveError
func GetErrorCode(err error) ErrorCode {
	var stowErr *StowsaveError
	if errors.As(err, &stowErr) {
		return stowErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a StowsaveError
func GetErrorDetails(err error) map[string]interface{} {
	var stowErr *StowsaveError
	if errors.As(err, &stowErr) {
		return stowErr.Details
	}
	return nil
}
