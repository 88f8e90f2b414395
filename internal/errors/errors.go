package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies an application error. Every error the engine returns
// is recoverable; the type tells the caller which recovery applies.
type ErrorType string

const (
	// ErrTypeInsufficientData signals fewer than two distinct non-empty
	// buckets at the requested granularity. Callers should widen the
	// date range.
	ErrTypeInsufficientData ErrorType = "INSUFFICIENT_DATA"
	// ErrTypeEmptyInput signals ranking requested on zero rows. Callers
	// should skip the insight display.
	ErrTypeEmptyInput ErrorType = "EMPTY_INPUT"
	// ErrTypeSerialization signals an export backend failure or malformed
	// tabular input. Callers may fall back to the alternate format.
	ErrTypeSerialization ErrorType = "SERIALIZATION"
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeConfig        ErrorType = "CONFIG"
	ErrTypeStorage       ErrorType = "STORAGE"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
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

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper constructors for the error taxonomy

// NewInsufficientDataError signals that a period comparison needs more
// history than the batch contains.
func NewInsufficientDataError(message string) *AppError {
	return NewAppError(ErrTypeInsufficientData, message, nil)
}

// NewEmptyInputError signals an operation invoked on zero rows.
func NewEmptyInputError(message string) *AppError {
	return NewAppError(ErrTypeEmptyInput, message, nil)
}

// NewSerializationError creates an export serialization error
func NewSerializationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSerialization, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// TypeOf returns the ErrorType of err, or "" when err is not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsInsufficientData reports whether err is an INSUFFICIENT_DATA error.
func IsInsufficientData(err error) bool {
	return TypeOf(err) == ErrTypeInsufficientData
}

// IsEmptyInput reports whether err is an EMPTY_INPUT error.
func IsEmptyInput(err error) bool {
	return TypeOf(err) == ErrTypeEmptyInput
}

// IsSerialization reports whether err is a SERIALIZATION error.
func IsSerialization(err error) bool {
	return TypeOf(err) == ErrTypeSerialization
}
