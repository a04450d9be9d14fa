package service

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/lumenhq/lumen-backend/internal/config"
)

// Mailer dispatches transactional mail. It is an external collaborator:
// callers treat every send as fire-and-forget.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// smtpMailer sends mail over plain SMTP with AUTH
type smtpMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewMailer builds a mailer from config; returns a no-op mailer when
// mail is disabled so callers never have to nil-check.
func NewMailer(cfg *config.Config) Mailer {
	if !cfg.Mail.Enabled || cfg.Mail.Host == "" {
		return noopMailer{}
	}
	return &smtpMailer{
		host: cfg.Mail.Host,
		port: cfg.Mail.Port,
		user: cfg.Mail.User,
		pass: cfg.Mail.Pass,
		from: cfg.Mail.From,
	}
}

func (m *smtpMailer) SendWelcome(_ context.Context, to, name string) error {
	subject := "Welcome to Lumen"
	body := fmt.Sprintf("Hi %s,\r\n\r\nYour application has been approved. Welcome aboard!\r\n", name)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}

// noopMailer is used when mail is not configured
type noopMailer struct{}

func (noopMailer) SendWelcome(context.Context, string, string) error {
	return nil
}
