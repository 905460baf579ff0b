package auth

import (
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"regdocs/internal/domain"
	models "regdocs/internal/domain/models/registry"
)

const issuer = "regdocs"

// SessionClaims are the claims carried by a session token.
// Subject is the session ID. There is no expiry claim; a session ends on sign-out.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

// HMACSigner implements TokenSigner with HS256 and a shared secret.
type HMACSigner struct {
	secret []byte
	parser *jwt.Parser
	logger *slog.Logger
}

// Verify interface compliance
var _ TokenSigner = (*HMACSigner)(nil)

// NewHMACSigner creates a signer for secret.
func NewHMACSigner(secret []byte, logger *slog.Logger) (*HMACSigner, error) {
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 bytes")
	}
	return &HMACSigner{
		secret: secret,
		// Prevent algorithm confusion attacks - allow only HS256
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
		),
		logger: logger,
	}, nil
}

// Sign returns an HS256 token whose subject is the session ID
func (s *HMACSigner) Sign(session *models.Session) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  session.ID,
			IssuedAt: jwt.NewNumericDate(session.CreatedAt),
		},
		Role: session.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates the signature and required claims
func (s *HMACSigner) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		s.logger.Debug("session token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		s.logger.Debug("session token missing subject or role")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
