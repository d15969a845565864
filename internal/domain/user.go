package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The plaintext Password field is
// only populated transiently during signup or profile updates; it is never
// persisted and never serialized.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, transient
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	Age            int       `json:"age"`
	Avatar         []byte    `json:"-"` // PNG bytes, served via the avatar endpoint
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User from signup input. The email is normalized to
// lower case and the name trimmed. The caller is responsible for hashing
// the password before storing the user.
func NewUser(name, email, password string, age int) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the User's fields and returns the first violation found.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrInvalidID
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}

	if u.Age < 0 {
		return ErrNegativeAge
	}

	// A plaintext password is present during signup and password changes.
	// Existing users loaded from the store carry only the hash.
	if u.Password != "" {
		return ValidatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidatePassword enforces the password rules: between 7 and 72
// characters, and never the literal string "password".
func ValidatePassword(password string) error {
	if len(password) < 7 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	if strings.EqualFold(password, "password") {
		return ErrPasswordForbidden
	}
	return nil
}
