package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category independently of its message
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Template authoring errors
	ErrTemplateUnterminatedBlock ErrorCode = "TEMPLATE_UNTERMINATED_BLOCK"
	ErrTemplateNestedBlock       ErrorCode = "TEMPLATE_NESTED_BLOCK"
	ErrTemplateBadPlaceholder    ErrorCode = "TEMPLATE_BAD_PLACEHOLDER"

	// Command description errors
	ErrMetadataLoad   ErrorCode = "METADATA_LOAD"
	ErrMetadataParse  ErrorCode = "METADATA_PARSE"
	ErrMetadataFormat ErrorCode = "METADATA_FORMAT"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Rendering errors
	ErrRender ErrorCode = "RENDER"
	ErrWrite  ErrorCode = "WRITE"
)

// ClihelpError represents a structured error with code and details
type ClihelpError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ClihelpError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ClihelpError) Unwrap() error {
	return e.Wrapped
}

// Is matches any ClihelpError carrying the same code
func (e *ClihelpError) Is(target error) bool {
	var targetErr *ClihelpError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ClihelpError with the given code and message
func New(code ErrorCode, message string) *ClihelpError {
	return &ClihelpError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ClihelpError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ClihelpError {
	return &ClihelpError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *ClihelpError {
	if err == nil {
		return nil
	}
	return &ClihelpError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ClihelpError {
	if err == nil {
		return nil
	}
	return &ClihelpError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ClihelpError) WithDetail(key string, value interface{}) *ClihelpError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ce *ClihelpError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var ce *ClihelpError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil
func GetErrorDetails(err error) map[string]interface{} {
	var ce *ClihelpError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
