package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldSentinelsWrapValidation(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrInvalidID,
		ErrEmptyName,
		ErrEmptyEmail,
		ErrInvalidEmail,
		ErrPasswordTooShort,
		ErrPasswordTooLong,
		ErrPasswordForbidden,
		ErrEmptyPassword,
		ErrNegativeAge,
		ErrEmptyDescription,
	}

	for _, sentinel := range sentinels {
		assert.ErrorIs(t, sentinel, ErrValidation, sentinel.Error())
	}
}
