package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and verifies the bearer tokens that identify a user.
// Tokens are stateless: nothing is stored and nothing can be revoked early.
type JWTService interface {
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken returns the claims of a token signed with the configured
	// secret that has not expired. Every failure wraps ErrInvalidToken;
	// ErrExpiredToken, ErrInvalidSignature and ErrMalformedToken tell the
	// cause apart.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified payload of a token. Only UserID is used for
// authorization; the registered claims are kept for logging and tests.
type Claims struct {
	UserID uuid.UUID `json:"uid,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
