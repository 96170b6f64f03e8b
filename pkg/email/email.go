// Package email delivers notification mail through SMTP, Resend or the log.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"internport-backend/config"
)

// Message is a single outgoing notification.
type Message struct {
	To      string
	Subject string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks a sender from MAIL_DRIVER. Unknown drivers fall back to the log.
func New(cfg *config.Config) (Sender, error) {
	switch cfg.MailDriver {
	case "smtp":
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("MAIL_DRIVER=resend requires RESEND_API_KEY")
		}
		return NewResendSender(cfg.ResendAPIKey, cfg.MailFrom)
	default:
		return NewLogSender(), nil
	}
}

func validateAddress(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return fmt.Errorf("email address is empty")
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return fmt.Errorf("invalid email address %q: %w", addr, err)
	}
	if parsed.Address != addr {
		return fmt.Errorf("email address %q must not carry a display name", addr)
	}
	return nil
}

const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 16px; }
        .content { padding: 20px; background: #f9f9f9; white-space: pre-line; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>{{.Subject}}</h2></div>
        <div class="content">{{.Text}}</div>
        <div class="footer"><p>Sent by InternPort.</p></div>
    </div>
</body>
</html>`

var htmlTemplate = template.Must(template.New("notification").Parse(notificationTemplate))

func renderHTML(msg Message) (string, error) {
	var body bytes.Buffer
	if err := htmlTemplate.Execute(&body, msg); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
