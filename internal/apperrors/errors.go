package apperrors

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated indicates that no usable credential or role accompanied the request.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden indicates that the caller is authenticated but its role is insufficient.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request collides with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = fmt.Errorf("%w: resource already exists", ErrConflict)

// ErrExpired indicates that a time-bound resource is past its validity window.
var ErrExpired = errors.New("expired")

// ErrRateLimited indicates that the caller exhausted its allowance for the current window.
var ErrRateLimited = errors.New("rate limit exceeded")

// ErrUnavailable indicates that a store or upstream dependency failed or timed out.
var ErrUnavailable = errors.New("service unavailable")

// AppError attaches a taxonomy kind and a human readable message to an underlying cause.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

// NewAppError creates an AppError. kind should be one of the sentinels above.
func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NewConflictError is a shorthand for a conflict without an underlying cause.
func NewConflictError(message string) *AppError {
	return NewAppError(ErrConflict, message, nil)
}

// NewUnavailableError wraps an infrastructure failure.
func NewUnavailableError(message string, err error) *AppError {
	return NewAppError(ErrUnavailable, message, err)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// kinds is ordered from most to least specific; ErrDuplicate is matched through ErrConflict.
var kinds = []struct {
	err  error
	name string
}{
	{ErrUnauthenticated, "unauthenticated"},
	{ErrForbidden, "forbidden"},
	{ErrRateLimited, "rate_limit_exceeded"},
	{ErrExpired, "expired"},
	{ErrNotFound, "not_found"},
	{ErrValidation, "invalid_input"},
	{ErrConflict, "conflict"},
	{ErrUnavailable, "unavailable"},
}

// Kind returns the stable taxonomy name for err, or "internal" when it carries no known kind.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
