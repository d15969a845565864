package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task represents a single to-do item owned by exactly one user. All store
// operations on tasks are scoped by OwnerID so that one user can never
// observe another's tasks.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Image       []byte    `json:"-"` // PNG bytes, served via the image endpoint
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a Task owned by the given user. The description is
// trimmed and the completed flag defaults to false unless set by the caller.
func NewTask(ownerID uuid.UUID, description string, completed bool) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Completed:   completed,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's fields and returns the first violation found.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrInvalidID
	}

	if t.OwnerID == uuid.Nil {
		return ErrInvalidID
	}

	if t.Description == "" {
		return ErrEmptyDescription
	}

	return nil
}
