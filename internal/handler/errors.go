package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"regdocs/internal/domain"
	"regdocs/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	status := domain.StatusFor(err)

	var storeErr *domain.StoreError
	switch {
	case errors.As(err, &storeErr):
		slog.Error("remote store failure",
			"operation", storeErr.Op,
			"error", err,
			"stack", string(debug.Stack()),
		)
		httputil.RespondProblem(w, httputil.NewProblem(status, err.Error()).With("operation", storeErr.Op))
	case status >= http.StatusInternalServerError:
		slog.Error("request failed", "error", err)
		httputil.RespondError(w, status, "internal server error")
	default:
		httputil.RespondError(w, status, err.Error())
	}
}

// inlineMessage renders an error for display inside a page.
// Store failures keep their full diagnostic.
func inlineMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Wrong password."
	case errors.Is(err, domain.ErrStore):
		slog.Error("remote store failure", "error", err, "stack", string(debug.Stack()))
		return "The remote store failed: " + err.Error()
	case domain.StatusFor(err) >= http.StatusInternalServerError:
		slog.Error("request failed", "error", err)
		return "Something went wrong. Details were written to the log."
	default:
		return err.Error()
	}
}
