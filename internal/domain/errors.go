package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the base error for every entity validation failure.
// The per-field sentinels below wrap it, so callers can branch on the
// category with errors.Is(err, ErrValidation) or on the specific rule.
var ErrValidation = errors.New("validation failed")

// Per-field validation errors. Each wraps ErrValidation.
var (
	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrEmptyName is returned when a user's name is missing.
	ErrEmptyName = fmt.Errorf("%w: name cannot be empty", ErrValidation)

	// ErrEmptyEmail is returned when an email address is missing.
	ErrEmptyEmail = fmt.Errorf("%w: email cannot be empty", ErrValidation)

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrPasswordTooShort is returned when a password is below the minimum length.
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 7 characters long", ErrValidation)

	// ErrPasswordTooLong is returned when a password exceeds bcrypt's limit.
	ErrPasswordTooLong = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)

	// ErrPasswordForbidden is returned when the password is the literal
	// string "password".
	ErrPasswordForbidden = fmt.Errorf(`%w: password cannot be "password"`, ErrValidation)

	// ErrEmptyPassword is returned when no password is available at all.
	ErrEmptyPassword = fmt.Errorf("%w: password cannot be empty", ErrValidation)

	// ErrNegativeAge is returned when an age below zero is supplied.
	ErrNegativeAge = fmt.Errorf("%w: age must be a non-negative number", ErrValidation)

	// ErrEmptyDescription is returned when a task has no description.
	ErrEmptyDescription = fmt.Errorf("%w: description cannot be empty", ErrValidation)
)
