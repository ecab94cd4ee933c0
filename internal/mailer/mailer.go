// Package mailer sends the confirmation emails for the planner API over SMTP.
// It renders HTML bodies from embedded templates and delivers them with
// net/smtp. Delivery is best effort: callers treat failures as observable but
// do not retry.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

// Mailer is the delivery interface the service layer depends on.
// Implementations must be safe for concurrent use — trip confirmation fans
// sends out across goroutines.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Config holds the SMTP server settings.
// Username and Password may be empty for unauthenticated local relays.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	FromAddr string
}

// SMTP is the production Mailer backed by net/smtp.
type SMTP struct {
	cfg Config
}

// NewSMTP constructs an SMTP mailer with the given settings.
func NewSMTP(cfg Config) *SMTP {
	return &SMTP{cfg: cfg}
}

// Send delivers a single HTML email. The context is consulted before dialing;
// net/smtp itself does not support cancellation mid-send.
func (m *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mailer.SMTP.Send: %w", err)
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.FromName, m.cfg.FromAddr, to, subject, htmlBody,
	))

	if err := smtp.SendMail(addr, auth, m.cfg.FromAddr, []string{to}, msg); err != nil {
		return fmt.Errorf("mailer.SMTP.Send: %w", err)
	}
	return nil
}
