package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cmorrow/taskhub/internal/api/shared"
	"github.com/cmorrow/taskhub/internal/domain"
	"github.com/cmorrow/taskhub/internal/platform/logger"
	"github.com/cmorrow/taskhub/internal/redact"
	"github.com/cmorrow/taskhub/internal/service/auth"
	"github.com/cmorrow/taskhub/internal/service/images"
	"github.com/cmorrow/taskhub/internal/store"
)

// Notifier dispatches account lifecycle emails. Sends are fire-and-forget:
// implementations must never block the caller on delivery.
type Notifier interface {
	SendWelcome(user *domain.User)
	SendCancellation(user *domain.User)
}

// UserHandler handles the /users routes: signup, login, session
// management, profile and avatar.
type UserHandler struct {
	userStore  store.UserStore
	tokenStore store.TokenStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	notifier   Notifier
	images     *images.Processor
	validator  *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	tokenStore store.TokenStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	notifier Notifier,
	processor *images.Processor,
) *UserHandler {
	return &UserHandler{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		notifier:   notifier,
		images:     processor,
		validator:  validator.New(),
	}
}

// Signup handles POST /users.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password, req.Age)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	hashed, err := h.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hashed

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email already in use")
			return
		}
		log.Error("failed to create user", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := h.issueToken(r, user)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	// Best-effort; delivery failures never affect the response.
	h.notifier.SendWelcome(user)

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:  userToResponse(user),
		Token: token,
	})
}

// Login handles POST /users/login. Unknown email and wrong password are
// indistinguishable to the client: both are 401.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to get user by email", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Tokens accumulate: one per active session.
	token, err := h.issueToken(r, user)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  userToResponse(user),
		Token: token,
	})
}

// issueToken mints a token and records it in the user's active set.
func (h *UserHandler) issueToken(r *http.Request, user *domain.User) (string, error) {
	log := logger.FromContext(r.Context())

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate token",
			"error", redact.Error(err),
			"user_id", user.ID)
		return "", err
	}

	if err := h.tokenStore.Add(r.Context(), user.ID, token); err != nil {
		log.Error("failed to store token",
			"error", redact.Error(err),
			"user_id", user.ID)
		return "", err
	}

	return token, nil
}

// Logout handles POST /users/logout: it revokes exactly the token that
// authenticated this request, leaving other sessions alive.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := shared.UserFromContext(r.Context())
	token := shared.TokenFromContext(r.Context())

	if err := h.tokenStore.Remove(r.Context(), user.ID, token); err != nil {
		// A concurrent logout may have removed it already; that is still
		// a successful logout from the client's point of view.
		if !errors.Is(err, store.ErrTokenNotFound) {
			log.Error("failed to remove token", "error", redact.Error(err), "user_id", user.ID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nil)
}

// LogoutAll handles POST /users/logoutall: it clears the user's entire
// token set, ending every session including this one.
func (h *UserHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := shared.UserFromContext(r.Context())

	if err := h.tokenStore.RemoveAll(r.Context(), user.ID); err != nil {
		log.Error("failed to remove all tokens", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to log out")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nil)
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateMe handles PATCH /users/me. Updates are restricted to the
// allow-list {name, email, password, age}; any other field fails the
// strict decode and is rejected as a validation error.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := shared.UserFromContext(r.Context())

	var req UpdateUserRequest
	if err := shared.DecodeJSONStrict(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid updates")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	updated := *user
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updated.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Age != nil {
		updated.Age = *req.Age
	}
	if req.Password != nil {
		if err := domain.ValidatePassword(*req.Password); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}
		hashed, err := h.hasher.Hash(*req.Password)
		if err != nil {
			log.Error("failed to hash password", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update user")
			return
		}
		updated.HashedPassword = hashed
	}

	updated.Password = ""
	if err := updated.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.userStore.Update(r.Context(), &updated); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(&updated))
}

// DeleteMe handles DELETE /users/me. Owned tasks and tokens go with the
// account; the cancellation email is dispatched best-effort.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := shared.UserFromContext(r.Context())

	if err := h.userStore.Delete(r.Context(), user.ID); err != nil {
		log.Error("failed to delete user", "error", redact.Error(err), "user_id", user.ID)
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	h.notifier.SendCancellation(user)

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UploadAvatar handles POST /users/me/avatar. The upload is normalized to
// a 250x250 PNG before storage.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	normalized, ok := h.readUpload(w, r, "avatar")
	if !ok {
		return
	}

	if err := h.userStore.SetAvatar(r.Context(), user.ID, normalized); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nil)
}

// GetAvatar handles GET /users/{id}/avatar. Avatars are public.
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}

	avatar, err := h.userStore.GetAvatar(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Image not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load avatar", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(avatar); err != nil {
		slog.Error("failed to write avatar response", "error", err)
	}
}

// DeleteAvatar handles DELETE /users/me/avatar.
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	if err := h.userStore.ClearAvatar(r.Context(), user.ID); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nil)
}

// readUpload extracts the multipart file from the named field and runs it
// through the image pipeline. On failure it writes the error response and
// returns false.
func (h *UserHandler) readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, bool) {
	normalized, err := normalizeUpload(w, r, field, h.images)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
		return nil, false
	}
	return normalized, true
}
