// Package mailer sends outbound notification email.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"inkwell/internal/config"
)

// Mailer delivers a plain-text message. Delivery is best-effort; callers
// treat a send failure as non-fatal.
type Mailer interface {
	Send(to, subject, body string) error
}

// NewFromConfig returns an SMTP mailer when an SMTP host is configured,
// otherwise a no-op mailer.
func NewFromConfig(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return NoopMailer{}
	}
	return &SMTPMailer{
		Addr: fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		From: cfg.SMTPFrom,
	}
}

// SMTPMailer sends mail through a single SMTP relay.
type SMTPMailer struct {
	Addr string
	From string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", sanitizeHeader(subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// sanitizeHeader strips CR/LF so user input cannot inject extra headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// NoopMailer drops every message. Used when SMTP is not configured and in
// tests.
type NoopMailer struct{}

func (NoopMailer) Send(_, _, _ string) error { return nil }
