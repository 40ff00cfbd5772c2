package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/mailgate/mailgate/internal/config"
)

// SMTPSender delivers email over SMTP with optional PLAIN auth.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
}

// NewSMTPSender builds an SMTP-backed sender from config.
func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

// Send delivers the message. The context is not honored mid-dial; net/smtp
// does not accept one, and the surrounding call treats the send as a single
// bounded network operation.
func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	payload := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", msg.From, msg.To, msg.Subject, msg.Body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, msg.From, []string{msg.To}, []byte(payload)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
