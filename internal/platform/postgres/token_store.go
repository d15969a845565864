package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cmorrow/taskhub/internal/platform/logger"
	"github.com/cmorrow/taskhub/internal/store"
)

// TokenStore implements the store.TokenStore interface using the
// auth_tokens table. A row per issued token is what allows single-session
// logout: deleting the row revokes the token even though its signature
// stays valid until expiry.
type TokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTokenStore creates a new PostgreSQL implementation of store.TokenStore.
func NewTokenStore(db store.DBTX, log *slog.Logger) *TokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TokenStore{
		db:     db,
		logger: log.With(slog.String("component", "token_store")),
	}
}

// Ensure TokenStore implements store.TokenStore.
var _ store.TokenStore = (*TokenStore)(nil)

// Add implements store.TokenStore.Add.
func (s *TokenStore) Add(ctx context.Context, userID uuid.UUID, token string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO auth_tokens (user_id, token, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, userID, token, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("token issued for missing user",
				slog.String("user_id", userID.String()))
			return store.ErrUserNotFound
		}
		log.Error("failed to store token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Debug("token stored",
		slog.String("user_id", userID.String()))
	return nil
}

// Contains implements store.TokenStore.Contains.
func (s *TokenStore) Contains(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM auth_tokens WHERE user_id = $1 AND token = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, token).Scan(&exists); err != nil {
		log.Error("failed to check token membership",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return false, err
	}

	return exists, nil
}

// Remove implements store.TokenStore.Remove.
func (s *TokenStore) Remove(ctx context.Context, userID uuid.UUID, token string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM auth_tokens WHERE user_id = $1 AND token = $2`

	result, err := s.db.ExecContext(ctx, query, userID, token)
	if err != nil {
		log.Error("failed to remove token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		log.Debug("token not found for removal",
			slog.String("user_id", userID.String()))
		return store.ErrTokenNotFound
	}

	log.Info("token revoked",
		slog.String("user_id", userID.String()))
	return nil
}

// RemoveAll implements store.TokenStore.RemoveAll.
func (s *TokenStore) RemoveAll(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to remove all tokens",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("all tokens revoked",
		slog.String("user_id", userID.String()))
	return nil
}
