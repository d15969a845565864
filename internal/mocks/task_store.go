package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/cmorrow/taskhub/internal/domain"
	"github.com/cmorrow/taskhub/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation honors owner scoping the same way the real store does:
// another user's task is reported as not found.
type MockTaskStore struct {
	mu sync.Mutex

	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, task *domain.Task) error
	GetByIDFn    func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	ListFn       func(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error)
	UpdateFn     func(ctx context.Context, task *domain.Task) error
	DeleteFn     func(ctx context.Context, id, ownerID uuid.UUID) error
	SetImageFn   func(ctx context.Context, id, ownerID uuid.UUID, image []byte) error
	GetImageFn   func(ctx context.Context, id uuid.UUID) ([]byte, error)
	ClearImageFn func(ctx context.Context, id, ownerID uuid.UUID) error

	// Data for the default in-memory implementation, in insertion order.
	Tasks []*domain.Task

	// Errors returned by the default implementation when set.
	CreateError error
	ListError   error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks = append(m.Tasks, task)
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(id, ownerID)
}

// find locates an owned task. Callers must hold the mutex.
func (m *MockTaskStore) find(id, ownerID uuid.UUID) (*domain.Task, error) {
	for _, task := range m.Tasks {
		if task.ID == id && task.OwnerID == ownerID {
			return task, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, opts)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var owned []*domain.Task
	for _, task := range m.Tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if opts.Completed != nil && task.Completed != *opts.Completed {
			continue
		}
		owned = append(owned, task)
	}

	sort.SliceStable(owned, func(i, j int) bool {
		var less bool
		switch opts.SortBy {
		case store.SortByUpdatedAt:
			less = owned[i].UpdatedAt.Before(owned[j].UpdatedAt)
		case store.SortByDescription:
			less = owned[i].Description < owned[j].Description
		case store.SortByCompleted:
			less = !owned[i].Completed && owned[j].Completed
		default:
			less = owned[i].CreatedAt.Before(owned[j].CreatedAt)
		}
		if opts.Descending {
			return !less
		}
		return less
	})

	if opts.Skip > 0 {
		if opts.Skip >= len(owned) {
			return nil, nil
		}
		owned = owned[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < len(owned) {
		owned = owned[:opts.Limit]
	}

	return owned, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.Tasks {
		if existing.ID == task.ID && existing.OwnerID == task.OwnerID {
			m.Tasks[i] = task
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, task := range m.Tasks {
		if task.ID == id && task.OwnerID == ownerID {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// SetImage implements the TaskStore interface
func (m *MockTaskStore) SetImage(ctx context.Context, id, ownerID uuid.UUID, image []byte) error {
	if m.SetImageFn != nil {
		return m.SetImageFn(ctx, id, ownerID, image)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, err := m.find(id, ownerID)
	if err != nil {
		return err
	}
	task.Image = image
	return nil
}

// GetImage implements the TaskStore interface
func (m *MockTaskStore) GetImage(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if m.GetImageFn != nil {
		return m.GetImageFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, task := range m.Tasks {
		if task.ID == id {
			if len(task.Image) == 0 {
				return nil, store.ErrImageNotFound
			}
			return task.Image, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// ClearImage implements the TaskStore interface
func (m *MockTaskStore) ClearImage(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.ClearImageFn != nil {
		return m.ClearImageFn(ctx, id, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, err := m.find(id, ownerID)
	if err != nil {
		return err
	}
	task.Image = nil
	return nil
}

// CountByOwner implements the TaskStore interface
func (m *MockTaskStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, task := range m.Tasks {
		if task.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}
