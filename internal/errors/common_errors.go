package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMalformedRow ErrorType = "MALFORMED_ROW"
	ErrTypeParsing      ErrorType = "PARSING"
	ErrTypeInput        ErrorType = "INPUT"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeConfig       ErrorType = "CONFIG"
	ErrTypeStorage      ErrorType = "STORAGE"
	ErrTypeRender       ErrorType = "RENDER"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
	Stack   []byte
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type, so sentinel values such as
// ErrMalformedRow can be used with errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// StackTrace returns the stack captured when the error was created
func (e *AppError) StackTrace() []byte {
	return e.Stack
}

// NewAppError creates a new application error, capturing the caller's stack
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	var stack []byte
	var stackErr *goerrors.Error
	if cause != nil && stderrors.As(cause, &stackErr) {
		stack = stackErr.Stack()
	} else {
		stack = goerrors.Wrap(message, 2).Stack()
	}

	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
		Stack:   stack,
	}
}

// Sentinels for errors.Is checks; they match any AppError of the same type
var (
	ErrMalformedRow = &AppError{Type: ErrTypeMalformedRow}
	ErrParsing      = &AppError{Type: ErrTypeParsing}
	ErrInput        = &AppError{Type: ErrTypeInput}
	ErrValidation   = &AppError{Type: ErrTypeValidation}
	ErrConfig       = &AppError{Type: ErrTypeConfig}
	ErrStorage      = &AppError{Type: ErrTypeStorage}
	ErrRender       = &AppError{Type: ErrTypeRender}
)

// Helper functions for common error types

// NewMalformedRowError creates an error for a row that cannot be cleaned
func NewMalformedRowError(row int, field string, cause error) *AppError {
	return NewAppError(ErrTypeMalformedRow, fmt.Sprintf("row %d: malformed %s", row, field), cause).
		WithContext("row", row).
		WithContext("field", field)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewInputError creates an error for an unreadable or unusable input source
func NewInputError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInput, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewRenderError creates an error raised while rendering a chart or table
func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}
