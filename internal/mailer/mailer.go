package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"inkwire.app/newsroom/internal/model"
)

type Email struct {
	FromName string
	FromAddr string
	To       string
	ToName   string
	Subject  string
	HTML     string
}

// Sender delivers a rendered email. Implementations decide the
// transport; the rest of the system only sees this interface.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// LogSender writes emails to the log instead of a provider. It is the
// default when no delivery credentials are configured, which keeps the
// notification flow observable in development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, email Email) error {
	s.logger.InfoContext(ctx, "email delivered to log sink",
		"to", email.To,
		"subject", email.Subject,
		"bytes", len(email.HTML),
	)
	return nil
}

// Mailer renders notification emails and hands them to a Sender.
type Mailer struct {
	sender   Sender
	fromName string
	fromAddr string
}

func New(sender Sender, fromName, fromAddr string) *Mailer {
	return &Mailer{
		sender:   sender,
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

// SendNotification renders the standard notification template and sends
// it. Returns an error when rendering or delivery fails; callers use
// success to stamp emailed_at.
func (m *Mailer) SendNotification(ctx context.Context, to, toName string, kind model.NotificationKind, title, body, actionURL string) error {
	html, err := renderNotification(notificationData{
		RecipientName: toName,
		Title:         title,
		Body:          body,
		ActionURL:     actionURL,
		FromName:      m.fromName,
	})
	if err != nil {
		return fmt.Errorf("rendering notification email: %w", err)
	}

	return m.sender.Send(ctx, Email{
		FromName: m.fromName,
		FromAddr: m.fromAddr,
		To:       to,
		ToName:   toName,
		Subject:  SubjectFor(kind, title),
		HTML:     html,
	})
}
