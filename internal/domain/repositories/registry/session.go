package registry

import (
	"context"

	models "regdocs/internal/domain/models/registry"
)

// SessionStore persists login sessions between requests
type SessionStore interface {
	// Save stores a session
	Save(ctx context.Context, session *models.Session) error

	// Get retrieves a session by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*models.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
