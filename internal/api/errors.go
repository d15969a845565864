package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cmorrow/taskhub/internal/domain"
	"github.com/cmorrow/taskhub/internal/service/auth"
	"github.com/cmorrow/taskhub/internal/service/images"
	"github.com/cmorrow/taskhub/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes following
// the API's taxonomy: validation 400, auth 401, missing owned resource
// 404, everything unexpected 500. Ownership misses deliberately surface as
// 404 rather than 403 so the existence of other users' resources is never
// revealed.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Validation errors. The domain's field sentinels all wrap
	// domain.ErrValidation, so one branch covers them.
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, images.ErrUnsupportedFormat),
		errors.Is(err, images.ErrTooLarge),
		errors.Is(err, images.ErrNotAnImage):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Please authenticate"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrAvatarNotFound),
		errors.Is(err, store.ErrImageNotFound):
		return "Image not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already in use"

	// Image validation messages name the violated constraint and are safe
	// to forward as-is.
	case errors.Is(err, images.ErrUnsupportedFormat),
		errors.Is(err, images.ErrTooLarge),
		errors.Is(err, images.ErrNotAnImage):
		return err.Error()

	// Domain validation errors are written for end users.
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return validationMessage(err)

	default:
		return "An unexpected error occurred"
	}
}

// validationMessage unwraps the store/domain wrapping so the client sees
// the concrete rule that failed, e.g. "password must be at least 7
// characters long".
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}

// SanitizeValidationError turns a validator.ValidationErrors message into
// a user-friendly one naming the offending field.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for
		// 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// validationTagMessage maps validation tags to user-friendly messages.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte":
		return "must not be negative"
	default:
		return "validation failed"
	}
}
