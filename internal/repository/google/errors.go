package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"regdocs/internal/domain"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates the service account lacks access to the sheet or folder.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the spreadsheet, sheet or folder does not exist.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")
)

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	if errors.Is(err, ErrForbidden) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusForbidden
	}
	return false
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// classify converts a Google API error to one of the package sentinels,
// keeping the original message for diagnostics.
func classify(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	var sentinel error
	switch gerr.Code {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	default:
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// WrapError converts a Google API error into a domain.StoreError for op.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return domain.WrapStore(op, classify(err))
}
