package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrStore        = errors.New("remote store failure")
)

// ErrInvalidCredentials is returned when a role password does not match.
var ErrInvalidCredentials = fmt.Errorf("%w: wrong password", ErrUnauthorized)

// ValidationError indicates invalid input. Nothing was sent to the remote stores.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string   { return e.Message }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError wraps an input problem so it maps to 400.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a failure of the spreadsheet or drive backend.
// Op names the remote operation that failed (e.g. "append row").
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// StatusCode implements the HTTPError interface
func (e *StoreError) StatusCode() int { return http.StatusBadGateway }

// Is allows errors.Is() to match against ErrStore
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// WrapStore wraps err as a StoreError for op. A nil err stays nil.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStore):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
