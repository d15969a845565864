package mocks

import (
	"sync"

	"github.com/cmorrow/taskhub/internal/domain"
)

// MockNotifier records lifecycle email dispatches for verification.
type MockNotifier struct {
	mu sync.Mutex

	WelcomeSent      []*domain.User
	CancellationSent []*domain.User
}

// SendWelcome records the welcome dispatch.
func (m *MockNotifier) SendWelcome(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WelcomeSent = append(m.WelcomeSent, user)
}

// SendCancellation records the cancellation dispatch.
func (m *MockNotifier) SendCancellation(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancellationSent = append(m.CancellationSent, user)
}
