package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/cmorrow/taskhub/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their (lowercased) email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update persists changes to name, email, hashed password and age.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists when updating to an email that is already taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Owned tasks and issued tokens are removed by
	// the schema's ON DELETE CASCADE. Returns ErrUserNotFound if the user
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetAvatar stores the normalized avatar bytes for the user.
	SetAvatar(ctx context.Context, id uuid.UUID, avatar []byte) error

	// GetAvatar returns the stored avatar bytes. Returns ErrUserNotFound
	// if the user does not exist and ErrAvatarNotFound if no avatar is set.
	GetAvatar(ctx context.Context, id uuid.UUID) ([]byte, error)

	// ClearAvatar removes the user's avatar. Returns ErrUserNotFound if
	// the user does not exist.
	ClearAvatar(ctx context.Context, id uuid.UUID) error
}

// TokenStore manages each user's set of active authentication tokens.
// Membership in this set is what makes a signed token valid, which gives
// the server the ability to revoke individual sessions.
type TokenStore interface {
	// Add appends a newly issued token to the user's active set.
	Add(ctx context.Context, userID uuid.UUID, token string) error

	// Contains reports whether the token is in the user's active set.
	Contains(ctx context.Context, userID uuid.UUID, token string) (bool, error)

	// Remove deletes exactly one token from the user's active set.
	// Returns ErrTokenNotFound if the token was not present.
	Remove(ctx context.Context, userID uuid.UUID, token string) error

	// RemoveAll clears the user's entire active set (logout everywhere).
	RemoveAll(ctx context.Context, userID uuid.UUID) error
}
