package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/cmorrow/taskhub/internal/domain"
)

// Task list sort keys accepted by ListOptions.SortBy. These are the JSON
// field names exposed by the API, mapped to columns inside the store.
const (
	SortByCreatedAt   = "createdAt"
	SortByUpdatedAt   = "updatedAt"
	SortByDescription = "description"
	SortByCompleted   = "completed"
)

// ListOptions narrows and orders a task listing. The zero value returns
// the caller's full task set ordered by creation time ascending, which
// keeps unpaginated listings deterministic.
type ListOptions struct {
	// Completed filters by the completed flag when non-nil.
	Completed *bool

	// SortBy is one of the SortBy* constants; empty means creation order.
	SortBy string

	// Descending reverses the sort direction.
	Descending bool

	// Limit caps the number of rows returned; zero or negative means no cap.
	Limit int

	// Skip drops that many rows from the start of the result.
	Skip int
}

// TaskStore defines the interface for task data persistence. Every method
// that touches an existing task is scoped by (id, owner) so that a task
// belonging to another user is indistinguishable from a missing one.
type TaskStore interface {
	// Create saves a new task.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given id owned by ownerID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// List returns the owner's tasks narrowed and ordered by opts.
	List(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]*domain.Task, error)

	// Update persists changes to description and completed.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given id owned by ownerID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// SetImage stores the normalized thumbnail bytes for an owned task.
	SetImage(ctx context.Context, id, ownerID uuid.UUID, image []byte) error

	// GetImage returns the task's thumbnail without an owner scope; task
	// images are publicly readable. Returns ErrTaskNotFound if the task
	// does not exist and ErrImageNotFound if it has no image.
	GetImage(ctx context.Context, id uuid.UUID) ([]byte, error)

	// ClearImage removes the thumbnail from an owned task.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	ClearImage(ctx context.Context, id, ownerID uuid.UUID) error

	// CountByOwner reports how many tasks the user owns. Used by tests to
	// verify the cascade on account deletion.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}
