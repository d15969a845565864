package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmorrow/taskhub/internal/domain"
	"github.com/cmorrow/taskhub/internal/service/auth"
	"github.com/cmorrow/taskhub/internal/service/images"
	"github.com/cmorrow/taskhub/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"avatar not found", store.ErrAvatarNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"field sentinel wraps validation", domain.ErrEmptyName, http.StatusBadRequest},
		{"password rule wraps validation", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"empty description wraps validation", domain.ErrEmptyDescription, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: name cannot be empty", domain.ErrValidation), http.StatusBadRequest},
		{"bad image format", images.ErrUnsupportedFormat, http.StatusBadRequest},
		{"image too large", images.ErrTooLarge, http.StatusBadRequest},
		{"unknown", errors.New("database on fire"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("loading task: %w", store.ErrTaskNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"email exists", store.ErrEmailExists, "Email already in use"},
		{"image format forwarded", images.ErrUnsupportedFormat, "file must be a jpg, jpeg or png image"},
		{
			"wrapped validation exposes the concrete rule",
			fmt.Errorf("%w: password must be at least 7 characters long", domain.ErrValidation),
			"password must be at least 7 characters long",
		},
		{
			"field sentinel exposes the concrete rule",
			domain.ErrEmptyName,
			"name cannot be empty",
		},
		{
			"store-wrapped sentinel still exposes the concrete rule",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrNegativeAge),
			"age must be a non-negative number",
		},
		{"internal details never leak", errors.New("pq: connection refused host=10.0.0.2"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
