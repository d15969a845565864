package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmorrow/taskhub/internal/api/middleware"
	"github.com/cmorrow/taskhub/internal/api/shared"
	"github.com/cmorrow/taskhub/internal/domain"
	"github.com/cmorrow/taskhub/internal/mocks"
	"github.com/cmorrow/taskhub/internal/service/auth"
)

func newAuthFixture(t *testing.T) (*domain.User, *mocks.MockTokenStore, http.Handler) {
	t.Helper()

	user, err := domain.NewUser("Carol", "carol@example.com", "longenough", 0)
	require.NoError(t, err)
	user.HashedPassword = "hashed:longenough"
	user.Password = ""

	users := mocks.NewMockUserStore()
	require.NoError(t, users.Create(context.Background(), user))

	tokens := mocks.NewMockTokenStore()

	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "good-token":
				return &auth.Claims{UserID: user.ID}, nil
			case "expired-token":
				return nil, auth.ErrExpiredToken
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := shared.UserFromContext(r.Context())
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "good-token", shared.TokenFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.NewAuthMiddleware(jwtService, users, tokens).Authenticate(next)
	return user, tokens, handler
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid active token reaches the handler", func(t *testing.T) {
		user, tokens, handler := newAuthFixture(t)
		require.NoError(t, tokens.Add(context.Background(), user.ID, "good-token"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("header failures", func(t *testing.T) {
		tests := []struct {
			name    string
			header  string
			message string
		}{
			{"missing header", "", "Authorization header required"},
			{"wrong scheme", "Basic abc", "Invalid authorization format"},
			{"no token", "Bearer", "Invalid authorization format"},
			{"garbage token", "Bearer nonsense", "Invalid token"},
			{"expired token", "Bearer expired-token", "Token expired"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, handler := newAuthFixture(t)

				req := httptest.NewRequest(http.MethodGet, "/", nil)
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Contains(t, rec.Body.String(), tt.message)
			})
		}
	})

	t.Run("validly signed but revoked token is rejected", func(t *testing.T) {
		_, _, handler := newAuthFixture(t)

		// "good-token" verifies, but it was never added to the active set.
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
	})
}
