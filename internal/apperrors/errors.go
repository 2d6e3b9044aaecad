package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the requesting user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the resource is in a state that does not permit the action.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// FieldValidationError carries per-field validation messages so handlers can
// emit a 422-style {errors: {field: [messages]}} body. It unwraps to
// ErrValidation for errors.Is checks.
type FieldValidationError struct {
	Fields map[string][]string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

func (e *FieldValidationError) Unwrap() error {
	return ErrValidation
}

// NewFieldValidationError wraps a field->messages map.
func NewFieldValidationError(fields map[string][]string) *FieldValidationError {
	return &FieldValidationError{Fields: fields}
}
