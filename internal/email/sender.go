package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"pressroom_backend/internal/config"
	"pressroom_backend/internal/logger"
)

// Sender delivers transactional mail. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendPasswordReset(to, token string) error
	SendEmailVerification(to, token string) error
}

// SMTPSender delivers mail through the configured SMTP server.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.EmailConfig) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("email: smtp host is not configured")
	}
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	return &SMTPSender{dialer: d, from: cfg.From}, nil
}

func (s *SMTPSender) SendPasswordReset(to, token string) error {
	body := fmt.Sprintf(passwordResetBody, token)
	return s.send(to, "Password reset", body)
}

func (s *SMTPSender) SendEmailVerification(to, token string) error {
	body := fmt.Sprintf(emailVerificationBody, token)
	return s.send(to, "Confirm your email", body)
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("email: send to %s: %w", to, err)
	}
	return nil
}

// NoopSender is used when SMTP is not configured (local development,
// tests). Tokens are still issued; delivery is logged instead of sent.
type NoopSender struct{}

func (NoopSender) SendPasswordReset(to, token string) error {
	logger.Info("password reset email skipped (smtp disabled)", "to", to)
	return nil
}

func (NoopSender) SendEmailVerification(to, token string) error {
	logger.Info("verification email skipped (smtp disabled)", "to", to)
	return nil
}
