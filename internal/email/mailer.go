// Package email sends the account lifecycle notifications (welcome and
// cancellation). Delivery is best-effort: the dispatcher detaches sends
// from the request path and only ever logs failures.
package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/cmorrow/taskhub/internal/config"
)

// Mailer delivers a single plain-text email.
type Mailer interface {
	Send(ctx context.Context, toName, toAddress, subject, body string) error
}

// SendGridMailer implements Mailer using the SendGrid v3 API. The API key
// and sender identity are injected through configuration rather than read
// from process globals.
type SendGridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

// NewSendGridMailer creates a SendGridMailer from email configuration.
func NewSendGridMailer(cfg config.EmailConfig) *SendGridMailer {
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(cfg.APIKey),
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddress,
	}
}

// Ensure SendGridMailer implements Mailer.
var _ Mailer = (*SendGridMailer)(nil)

// Send implements the Mailer interface.
func (m *SendGridMailer) Send(ctx context.Context, toName, toAddress, subject, body string) error {
	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail(toName, toAddress)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("email provider rejected message: status %d", resp.StatusCode)
	}

	return nil
}
