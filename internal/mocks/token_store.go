package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cmorrow/taskhub/internal/store"
)

// MockTokenStore implements store.TokenStore for testing
type MockTokenStore struct {
	mu sync.Mutex

	// Function fields for customizable behavior
	AddFn       func(ctx context.Context, userID uuid.UUID, token string) error
	ContainsFn  func(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	RemoveFn    func(ctx context.Context, userID uuid.UUID, token string) error
	RemoveAllFn func(ctx context.Context, userID uuid.UUID) error

	// Data for the default in-memory implementation.
	Tokens map[uuid.UUID]map[string]bool

	// Errors returned by the default implementation when set.
	AddError      error
	ContainsError error
}

// NewMockTokenStore creates a new mock store with initialized defaults
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{
		Tokens: make(map[uuid.UUID]map[string]bool),
	}
}

// Add implements the TokenStore interface
func (m *MockTokenStore) Add(ctx context.Context, userID uuid.UUID, token string) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, userID, token)
	}

	if m.AddError != nil {
		return m.AddError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Tokens[userID] == nil {
		m.Tokens[userID] = make(map[string]bool)
	}
	m.Tokens[userID][token] = true
	return nil
}

// Contains implements the TokenStore interface
func (m *MockTokenStore) Contains(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	if m.ContainsFn != nil {
		return m.ContainsFn(ctx, userID, token)
	}

	if m.ContainsError != nil {
		return false, m.ContainsError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Tokens[userID][token], nil
}

// Remove implements the TokenStore interface
func (m *MockTokenStore) Remove(ctx context.Context, userID uuid.UUID, token string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, userID, token)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Tokens[userID][token] {
		return store.ErrTokenNotFound
	}
	delete(m.Tokens[userID], token)
	return nil
}

// RemoveAll implements the TokenStore interface
func (m *MockTokenStore) RemoveAll(ctx context.Context, userID uuid.UUID) error {
	if m.RemoveAllFn != nil {
		return m.RemoveAllFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Tokens, userID)
	return nil
}

// CountFor reports how many tokens the user currently holds.
func (m *MockTokenStore) CountFor(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Tokens[userID])
}
