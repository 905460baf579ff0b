package handler

import (
	"net/http"

	"regdocs/internal/metrics"
	"regdocs/internal/middleware"
)

// Router wires every handler to its route
type Router struct {
	Pages      *PageHandler
	Documents  *DocumentHandler
	Categories *CategoryHandler
	Sessions   *SessionHandler
	Auth       *middleware.SessionMiddleware
	Metrics    *metrics.Metrics
}

// Handler builds the mux (Go 1.22+ enhanced patterns). Every route sees the
// session resolved by the auth middleware.
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, middleware.Instrument(rt.Metrics, pattern, h))
	}
	session := func(h http.HandlerFunc) http.Handler { return rt.Auth.RequireSession(h) }
	admin := func(h http.HandlerFunc) http.Handler { return rt.Auth.RequireAdmin(h) }

	// Health check and metrics
	handle("GET /health", http.HandlerFunc(HealthCheck))
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics.Handler())
	}

	// Pages
	handle("GET /{$}", http.HandlerFunc(rt.Pages.Root))
	handle("GET /login", http.HandlerFunc(rt.Pages.LoginPage))
	handle("POST /login", http.HandlerFunc(rt.Pages.Login))
	handle("POST /logout", http.HandlerFunc(rt.Pages.Logout))
	handle("GET /documents", http.HandlerFunc(rt.Pages.Documents))
	handle("GET /upload", http.HandlerFunc(rt.Pages.UploadPage))
	handle("POST /upload", http.HandlerFunc(rt.Pages.Upload))
	handle("GET /categories", http.HandlerFunc(rt.Pages.CategoriesPage))
	handle("POST /categories", http.HandlerFunc(rt.Pages.AddCategory))

	// Session routes
	handle("POST /api/session", http.HandlerFunc(rt.Sessions.CreateSession))
	handle("GET /api/session", session(rt.Sessions.GetSession))
	handle("DELETE /api/session", http.HandlerFunc(rt.Sessions.DeleteSession))

	// Document routes
	handle("GET /api/documents", session(rt.Documents.ListDocuments))
	handle("POST /api/documents", admin(rt.Documents.SubmitDocument))

	// Category routes
	handle("GET /api/categories", session(rt.Categories.ListCategories))
	handle("GET /api/categories/options", session(rt.Categories.GetOptions))
	handle("POST /api/categories", admin(rt.Categories.AddCategory))

	return rt.Auth.Authenticate(mux)
}
