// internal/workers/notification_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/hibiken/asynq"

	"github.com/Sheimsito/picm-server/internal/pkg/config"
)

// NotificationProcessor delivers email notifications: report-ready notices
// and low-stock alerts.
type NotificationProcessor struct {
	config *config.Config
	logger *slog.Logger
}

// NewNotificationProcessor creates a new notification processor
func NewNotificationProcessor(cfg *config.Config, logger *slog.Logger) *NotificationProcessor {
	return &NotificationProcessor{
		config: cfg,
		logger: logger.With(slog.String("processor", "notification")),
	}
}

// SendEmail handles notify:email tasks.
func (p *NotificationProcessor) SendEmail(ctx context.Context, t *asynq.Task) error {
	var payload NotifyEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "sending email",
		slog.String("to", payload.To),
		slog.String("template", payload.Template))

	// In development, just log the email
	if p.config.App.Environment == "development" {
		p.logger.InfoContext(ctx, "email would be sent",
			slog.String("to", payload.To),
			slog.String("subject", payload.Subject),
			slog.String("body", payload.Body))
		return nil
	}

	email := p.config.Email
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		email.From, payload.To, payload.Subject, p.renderBody(payload),
	))

	auth := smtp.PlainAuth("", email.SMTPUser, email.SMTPPassword, email.SMTPHost)
	addr := fmt.Sprintf("%s:%d", email.SMTPHost, email.SMTPPort)
	if err := smtp.SendMail(addr, auth, email.From, []string{payload.To}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	p.logger.InfoContext(ctx, "email sent", slog.String("to", payload.To))
	return nil
}

func (p *NotificationProcessor) renderBody(payload NotifyEmailPayload) string {
	switch payload.Template {
	case "report_ready":
		return fmt.Sprintf("Your movements report is ready. Archive key: %s", payload.Body)
	case "low_stock":
		return fmt.Sprintf("Low stock warning: %s", payload.Body)
	default:
		return payload.Body
	}
}
