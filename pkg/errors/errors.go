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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateInvalid  ErrorCode = "TEMPLATE_INVALID"
	ErrCapacity         ErrorCode = "CAPACITY_EXCEEDED"

	// Rendering errors
	ErrMissingKey   ErrorCode = "MISSING_KEY"
	ErrInvalidStyle ErrorCode = "INVALID_STYLE"

	// FileSystem errors
	ErrFileRead ErrorCode = "FILE_READ"
)

// TemplateError represents a structured error with code and details
type TemplateError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TemplateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TemplateError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *TemplateError carrying the same code
func (e *TemplateError) Is(target error) bool {
	var targetErr *TemplateError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TemplateError with the given code and message
func New(code ErrorCode, message string) *TemplateError {
	return &TemplateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TemplateError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TemplateError {
	return &TemplateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TemplateError
func Wrap(err error, code ErrorCode, message string) *TemplateError {
	if err == nil {
		return nil
	}
	return &TemplateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TemplateError {
	if err == nil {
		return nil
	}
	return &TemplateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TemplateError) WithDetail(key string, value interface{}) *TemplateError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TemplateError) WithDetails(details map[string]interface{}) *TemplateError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tmplErr *TemplateError
	if errors.As(err, &tmplErr) {
		return tmplErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TemplateError
func GetErrorCode(err error) ErrorCode {
	var tmplErr *TemplateError
	if errors.As(err, &tmplErr) {
		return tmplErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TemplateError
func GetErrorDetails(err error) map[string]interface{} {
	var tmplErr *TemplateError
	if errors.As(err, &tmplErr) {
		return tmplErr.Details
	}
	return nil
}
