package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmorrow/taskhub/internal/domain"
)

// sendTimeout bounds each detached delivery so a slow provider cannot pin
// goroutines indefinitely.
const sendTimeout = 30 * time.Second

// Dispatcher sends account lifecycle emails as detached background work.
// Each send runs on its own goroutine with an independent context, so
// provider failures are isolated from the request/response lifecycle:
// callers get no error and wait for nothing.
type Dispatcher struct {
	mailer Mailer
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher delivering through the given mailer.
func NewDispatcher(mailer Mailer, log *slog.Logger) *Dispatcher {
	if mailer == nil {
		panic("mailer cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		mailer: mailer,
		logger: log.With(slog.String("component", "email_dispatcher")),
	}
}

// SendWelcome dispatches the signup welcome email.
func (d *Dispatcher) SendWelcome(user *domain.User) {
	body := fmt.Sprintf(
		"Welcome to the app, %s. Let me know how you get along with it.",
		user.Name,
	)
	d.dispatch(user, "Thanks for joining in!", body)
}

// SendCancellation dispatches the account deletion confirmation email.
func (d *Dispatcher) SendCancellation(user *domain.User) {
	body := fmt.Sprintf(
		"Hi %s, your account has been deleted. Thank you for using our service; we hope to see you back sometime soon.",
		user.Name,
	)
	d.dispatch(user, "Sorry to see you go", body)
}

// Wait blocks until all in-flight sends have finished. Used during
// shutdown and by tests; request handlers never call it.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(user *domain.User, subject, body string) {
	name := user.Name
	address := user.Email
	userID := user.ID

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := d.mailer.Send(ctx, name, address, subject, body); err != nil {
			d.logger.Error("failed to send notification email",
				slog.String("error", err.Error()),
				slog.String("subject", subject),
				slog.String("user_id", userID.String()))
			return
		}

		d.logger.Debug("notification email sent",
			slog.String("subject", subject),
			slog.String("user_id", userID.String()))
	}()
}
