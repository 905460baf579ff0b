package httputil

import (
	"context"
	"net/http"

	models "regdocs/internal/domain/models/registry"
)

// Context key type to avoid collisions
type contextKey string

const (
	sessionKey contextKey = "session"
)

// WithSession adds the authenticated session to the request context
func WithSession(r *http.Request, session *models.Session) *http.Request {
	ctx := context.WithValue(r.Context(), sessionKey, session)
	return r.WithContext(ctx)
}

// GetSession retrieves the session from context, returns nil if not signed in
func GetSession(r *http.Request) *models.Session {
	session, _ := r.Context().Value(sessionKey).(*models.Session)
	return session
}
