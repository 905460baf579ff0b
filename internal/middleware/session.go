package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"regdocs/internal/domain"
	registrySvc "regdocs/internal/domain/services/registry"
	"regdocs/internal/httputil"
)

// SessionMiddleware resolves the session token on each request and gates routes by role
type SessionMiddleware struct {
	access registrySvc.AccessService
	logger *slog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(access registrySvc.AccessService, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{access: access, logger: logger}
}

// Authenticate attaches the session to the request context when the token is valid.
// Requests without a valid token pass through unauthenticated; pages decide what to show.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := httputil.SessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.access.Authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				m.logger.Error("session lookup failed", "error", err, "path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, httputil.WithSession(r, session))
	})
}

// RequireSession rejects API requests without a session
func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if httputil.GetSession(r) == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects API requests from visitors
func (m *SessionMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := httputil.GetSession(r)
		if session == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		if !session.IsAdmin() {
			httputil.RespondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
