package mail

import (
	"context"
	"log/slog"
)

// Message describes an outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender delivers email through a transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the structured logger instead of delivering
// them. Used in development when no SMTP host is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs a logging mail sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send writes the message to the logger.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Info("mail", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
