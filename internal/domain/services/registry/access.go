package registry

import (
	"context"

	models "regdocs/internal/domain/models/registry"
)

// AccessService gates pages behind the two shared role passwords
type AccessService interface {
	// Login checks the password for the chosen role and opens a session
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)

	// Authenticate resolves a session token to its live session
	Authenticate(ctx context.Context, token string) (*models.Session, error)

	// Logout removes the session
	Logout(ctx context.Context, sessionID string) error
}

// LoginRequest is the login form
type LoginRequest struct {
	Role     models.Role `json:"role"`
	Password string      `json:"password"`
}

// LoginResult carries the new session and the token that references it
type LoginResult struct {
	Session *models.Session `json:"session"`
	Token   string          `json:"token"`
}
