package memory

import (
	"context"
	"sync"

	"regdocs/internal/domain"
	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
)

// Verify interface compliance
var _ registryRepo.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in process memory. Sessions do not survive a restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewSessionStore creates an empty SessionStore
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]models.Session)}
}

// Save stores a session
func (s *SessionStore) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

// Get retrieves a session by ID
func (s *SessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// Delete removes a session
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
