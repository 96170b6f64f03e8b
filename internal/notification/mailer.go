// Package notification delivers mail either directly through a sender or
// through a RabbitMQ queue drained by the worker process.
package notification

import (
	"context"

	"internport-backend/internal/domain"
	"internport-backend/pkg/email"
	"internport-backend/pkg/metrics"
)

// DirectMailer sends mail synchronously with the configured sender.
type DirectMailer struct {
	sender email.Sender
}

func NewDirectMailer(sender email.Sender) *DirectMailer {
	return &DirectMailer{sender: sender}
}

func (m *DirectMailer) Send(ctx context.Context, mail domain.Mail) error {
	err := deliver(ctx, m.sender, mail)
	metrics.MailsSent.WithLabelValues("direct", metrics.Result(err)).Inc()
	return err
}

func deliver(ctx context.Context, sender email.Sender, mail domain.Mail) error {
	return sender.Send(ctx, email.Message{
		To:      mail.To,
		Subject: mail.Subject,
		Text:    mail.Body,
	})
}
