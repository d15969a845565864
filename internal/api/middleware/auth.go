// Package middleware contains the HTTP middleware chain: request tracing
// and bearer-token authentication.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmorrow/taskhub/internal/api/shared"
	"github.com/cmorrow/taskhub/internal/redact"
	"github.com/cmorrow/taskhub/internal/service/auth"
	"github.com/cmorrow/taskhub/internal/store"
)

// AuthMiddleware authenticates requests from the Authorization header.
// A token is accepted only if its signature verifies AND it is still a
// member of the user's stored token set; removing the row is how logout
// revokes a session server-side.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
	tokenStore store.TokenStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(
	jwtService auth.JWTService,
	userStore store.UserStore,
	tokenStore store.TokenStore,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
		tokenStore: tokenStore,
	}
}

// Authenticate validates bearer tokens and attaches the resolved user and
// the exact matched token to the request context. All failures are
// terminal 401s; nothing is retried.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		token := parts[1]

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		// Signature alone is not enough: the token must still be in the
		// user's active set, otherwise it was revoked by a logout.
		active, err := m.tokenStore.Contains(r.Context(), claims.UserID, token)
		if err != nil {
			slog.Error("failed to check token membership", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}
		if !active {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			slog.Error("failed to load authenticated user", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user, token)))
	})
}
