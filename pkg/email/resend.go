package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"

	"internport-backend/pkg/logger"
)

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if err := validateAddress(from); err != nil {
		return nil, fmt.Errorf("invalid sender email in config: %w", err)
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from}, nil
}

// Send does not retry on rate limiting; the job queue owns retries.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if err := validateAddress(msg.To); err != nil {
		return err
	}

	html, err := renderHTML(msg)
	if err != nil {
		return err
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    html,
		Text:    msg.Text,
	})
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			logger.Log.Warn("resend rate limit exceeded",
				"limit", rateLimitErr.Limit,
				"remaining", rateLimitErr.Remaining,
				"reset", rateLimitErr.Reset,
			)
			return fmt.Errorf("email rate limit exceeded (resets in %s seconds): %w", rateLimitErr.Reset, err)
		}
		return fmt.Errorf("resend API error: %w", err)
	}

	logger.Log.Info("email sent via Resend", "email_id", sent.Id, "subject", msg.Subject)
	return nil
}
