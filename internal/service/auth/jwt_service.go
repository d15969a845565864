// Package auth provides the password hashing and token signing services
// used by the HTTP layer. Signed tokens carry the user's identity; whether
// a token is still accepted is decided separately by membership in the
// user's stored token set.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed, has a bad
	// signature, or carries unusable claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)

// Claims holds the validated contents of a token.
type Claims struct {
	UserID    uuid.UUID
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// JWTService mints and verifies the signed bearer tokens used for
// authentication.
type JWTService interface {
	// GenerateToken creates a signed token embedding the user's ID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the signature and standard claims of a token
	// and returns its claims. Returns ErrExpiredToken or ErrInvalidToken
	// on failure.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
