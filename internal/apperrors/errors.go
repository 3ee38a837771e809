package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found, or that it
// exists but does not belong to the project the caller is scoped to.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials (bad PIN, bad token).
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates valid credentials that do not grant access to the resource.
var ErrForbidden = errors.New("forbidden")

// ErrStorage indicates a failure in the persistence layer.
var ErrStorage = errors.New("storage error")

// AppError carries a status code and message alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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

// Validationf builds an error wrapping ErrValidation with a formatted detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds an error wrapping ErrNotFound with a formatted detail.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Storage wraps a driver error so callers can match it with errors.Is(err, ErrStorage).
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewAppError(500, op, fmt.Errorf("%w: %w", ErrStorage, err))
}
