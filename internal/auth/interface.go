package auth

import models "regdocs/internal/domain/models/registry"

// TokenSigner issues and verifies the token stored in the session cookie.
// The token only references a session; the session itself lives in a SessionStore.
type TokenSigner interface {
	// Sign returns a signed token referencing session.
	Sign(session *models.Session) (string, error)

	// Verify validates a token and returns its claims.
	// Returns domain.ErrUnauthorized if the token is malformed or has an invalid signature.
	Verify(tokenString string) (*SessionClaims, error)
}
