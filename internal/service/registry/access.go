package registry

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"regdocs/internal/auth"
	"regdocs/internal/domain"
	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
	registrySvc "regdocs/internal/domain/services/registry"
)

// RolePasswords holds the shared secret for each role
type RolePasswords struct {
	Admin   string
	Visitor string
}

type accessService struct {
	passwords RolePasswords
	sessions  registryRepo.SessionStore
	signer    auth.TokenSigner
	logger    *slog.Logger
	now       func() time.Time
}

// NewAccessService creates a new access service
func NewAccessService(
	passwords RolePasswords,
	sessions registryRepo.SessionStore,
	signer auth.TokenSigner,
	logger *slog.Logger,
) registrySvc.AccessService {
	return &accessService{
		passwords: passwords,
		sessions:  sessions,
		signer:    signer,
		logger:    logger,
		now:       time.Now,
	}
}

// Login compares the password with the role's secret and opens a session
func (s *accessService) Login(ctx context.Context, req *registrySvc.LoginRequest) (*registrySvc.LoginResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", domain.ErrValidation)
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Role, validation.Required, validation.In(models.RoleAdmin, models.RoleVisitor)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if !s.passwordMatches(req.Role, req.Password) {
		s.logger.Warn("login rejected", "role", req.Role)
		return nil, domain.ErrInvalidCredentials
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Role:      req.Role,
		CreatedAt: s.now().UTC(),
	}

	token, err := s.signer.Sign(session)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("session opened", "session_id", session.ID, "role", session.Role)

	return &registrySvc.LoginResult{Session: session, Token: token}, nil
}

// Authenticate verifies the token and loads the session it references
func (s *accessService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(ctx, claims.Subject)
	if errors.Is(err, domain.ErrNotFound) {
		// Signed out, or the store was reset
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return session, nil
}

// Logout removes the session. Removing an unknown session succeeds.
func (s *accessService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("session closed", "session_id", sessionID)
	return nil
}

func (s *accessService) passwordMatches(role models.Role, password string) bool {
	var expected string
	switch role {
	case models.RoleAdmin:
		expected = s.passwords.Admin
	case models.RoleVisitor:
		expected = s.passwords.Visitor
	}
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1
}
