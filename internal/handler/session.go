package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"regdocs/internal/domain"
	registrySvc "regdocs/internal/domain/services/registry"
	"regdocs/internal/httputil"
	"regdocs/internal/metrics"
)

// SessionHandler handles sign-in and sign-out for API clients
type SessionHandler struct {
	accessService registrySvc.AccessService
	metrics       *metrics.Metrics
	secureCookie  bool
	logger        *slog.Logger
}

// NewSessionHandler creates a new session handler. m may be nil.
func NewSessionHandler(accessService registrySvc.AccessService, m *metrics.Metrics, secureCookie bool, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		accessService: accessService,
		metrics:       m,
		secureCookie:  secureCookie,
		logger:        logger,
	}
}

// CreateSession signs in with a role password
// POST /api/session
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req registrySvc.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.accessService.Login(r.Context(), &req)
	recordLogin(h.metrics, string(req.Role), err)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.SetSessionCookie(w, result.Token, h.secureCookie)
	httputil.RespondJSON(w, http.StatusCreated, result)
}

// DeleteSession signs out
// DELETE /api/session
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if session := httputil.GetSession(r); session != nil {
		if err := h.accessService.Logout(r.Context(), session.ID); err != nil {
			handleError(w, err)
			return
		}
	}

	httputil.ClearSessionCookie(w, h.secureCookie)
	w.WriteHeader(http.StatusNoContent)
}

// GetSession returns the current session
// GET /api/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, httputil.GetSession(r))
}

func recordLogin(m *metrics.Metrics, role string, err error) {
	if m == nil || errors.Is(err, domain.ErrValidation) {
		return
	}
	m.RecordLogin(role, err == nil)
}
