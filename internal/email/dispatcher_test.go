package email

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmorrow/taskhub/internal/domain"
)

type recordingMailer struct {
	mu       sync.Mutex
	sent     []string // subjects
	toNames  []string
	err      error
	received chan struct{}
}

func newRecordingMailer(err error) *recordingMailer {
	return &recordingMailer{err: err, received: make(chan struct{}, 16)}
}

func (m *recordingMailer) Send(ctx context.Context, toName, toAddress, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, subject)
	m.toNames = append(m.toNames, toName)
	m.mu.Unlock()
	m.received <- struct{}{}
	return m.err
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		ID:    uuid.New(),
		Name:  "Andrew",
		Email: "andrew@example.com",
	}
}

func TestDispatcherSendsWelcome(t *testing.T) {
	t.Parallel()

	mailer := newRecordingMailer(nil)
	d := NewDispatcher(mailer, nil)

	d.SendWelcome(testUser(t))
	d.Wait()

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Thanks for joining in!", mailer.sent[0])
	assert.Equal(t, "Andrew", mailer.toNames[0])
}

func TestDispatcherSendsCancellation(t *testing.T) {
	t.Parallel()

	mailer := newRecordingMailer(nil)
	d := NewDispatcher(mailer, nil)

	d.SendCancellation(testUser(t))
	d.Wait()

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Sorry to see you go", mailer.sent[0])
}

func TestDispatcherSwallowsProviderFailure(t *testing.T) {
	t.Parallel()

	mailer := newRecordingMailer(errors.New("provider down"))
	d := NewDispatcher(mailer, nil)

	// The call itself must not block, panic or surface the error.
	d.SendWelcome(testUser(t))
	d.Wait()

	require.Len(t, mailer.sent, 1)
}

func TestNewDispatcherPanicsWithoutMailer(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewDispatcher(nil, nil) })
}
