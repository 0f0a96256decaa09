package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/verdanthq/verdant-api/internal/config"
	"github.com/verdanthq/verdant-api/internal/task"
)

// defaultFromName is used when the configuration does not name the sender.
const defaultFromName = "Verdant"

// sendClient abstracts the SendGrid client so tests can stub delivery.
type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// New builds the task.Mailer for the supplied configuration. A configured
// SendGrid API key yields a SendGridMailer; without one the returned
// LogMailer records notices in the log instead of sending them.
func New(logger *slog.Logger, cfg config.MailerConfig) (task.Mailer, error) {
	if cfg.SendGridAPIKey == "" {
		return NewLogMailer(logger)
	}
	return NewSendGridMailer(logger, cfg)
}

// SendGridMailer delivers completion notices through the SendGrid v3
// mail send API.
type SendGridMailer struct {
	logger *slog.Logger
	client sendClient
	from   *mail.Email
}

// Ensure SendGridMailer implements task.Mailer
var _ task.Mailer = (*SendGridMailer)(nil)

// NewSendGridMailer creates a mailer backed by the SendGrid API.
//
// Parameters:
//   - logger: A structured logger for delivery logging
//   - cfg: Mailer configuration containing the API key and sender identity
//
// Returns:
//   - A properly initialized SendGridMailer or an error if the
//     configuration is incomplete
func NewSendGridMailer(logger *slog.Logger, cfg config.MailerConfig) (*SendGridMailer, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if cfg.SendGridAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.FromAddress == "" {
		return nil, ErrMissingFromAddress
	}

	fromName := cfg.FromName
	if fromName == "" {
		fromName = defaultFromName
	}

	return &SendGridMailer{
		logger: logger.With("component", "sendgrid_mailer"),
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail(fromName, cfg.FromAddress),
	}, nil
}

// SendCompletionNotice emails the user who finished every day of a program.
// The notice carries both a plain text and an HTML body.
func (m *SendGridMailer) SendCompletionNotice(
	ctx context.Context,
	to, name, programTitle string,
	durationDays int,
) error {
	if to == "" {
		return ErrEmptyRecipient
	}

	subject, textBody, htmlBody, err := buildCompletionNotice(name, programTitle, durationDays)
	if err != nil {
		return fmt.Errorf("failed to render completion notice: %w", err)
	}

	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail(name, to), textBody, htmlBody)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send completion notice: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		m.logger.ErrorContext(ctx, "SendGrid rejected completion notice",
			"status_code", resp.StatusCode,
			"body", resp.Body)
		return fmt.Errorf("sendgrid rejected completion notice: status %d", resp.StatusCode)
	}

	m.logger.InfoContext(ctx, "completion notice sent",
		"program_title", programTitle,
		"status_code", resp.StatusCode)
	return nil
}

// LogMailer satisfies task.Mailer without sending anything. The notice is
// written to the structured log, which keeps environments without SendGrid
// credentials fully functional.
type LogMailer struct {
	logger *slog.Logger
}

// Ensure LogMailer implements task.Mailer
var _ task.Mailer = (*LogMailer)(nil)

// NewLogMailer creates a mailer that only logs notices.
func NewLogMailer(logger *slog.Logger) (*LogMailer, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	return &LogMailer{
		logger: logger.With("component", "log_mailer"),
	}, nil
}

// SendCompletionNotice records the notice in the log and reports success.
func (m *LogMailer) SendCompletionNotice(
	ctx context.Context,
	to, name, programTitle string,
	durationDays int,
) error {
	m.logger.InfoContext(ctx, "email delivery disabled, logging completion notice",
		"to", to,
		"program_title", programTitle,
		"duration_days", durationDays)
	return nil
}

// completionNoticeData feeds the notice templates.
type completionNoticeData struct {
	Name         string
	ProgramTitle string
	DurationDays int
}

// completionNoticeHTML wraps the notice in the product email shell.
const completionNoticeHTML = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;background-color:#f2f5f0;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:560px;margin:0 auto;background-color:#ffffff;border-radius:8px;padding:32px;">
    <h2 style="margin-top:0;color:#2d6a4f;">You did it, {{.Name}}!</h2>
    <p>Today you completed the final day of <strong>{{.ProgramTitle}}</strong>.</p>
    <p>That is {{.DurationDays}} days of showing up for yourself, every one of them logged.</p>
    <p>Your streak and calendar are waiting in the app whenever you want to look back on the run.</p>
    <p style="margin-bottom:0;color:#6c757d;font-size:13px;">The Verdant team</p>
  </div>
</body>
</html>`

var completionNoticeTemplate = template.Must(template.New("completion_notice").Parse(completionNoticeHTML))

// buildCompletionNotice renders the subject line and both message bodies.
// An empty name falls back to a generic greeting since accounts may omit
// the name field.
func buildCompletionNotice(name, programTitle string, durationDays int) (string, string, string, error) {
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("You finished %s", programTitle)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nToday you completed the final day of %s. That is %d days of showing up for yourself.\n\nYour streak and calendar are waiting in the app.\n\nThe Verdant team",
		name, programTitle, durationDays)

	var htmlBuf bytes.Buffer
	err := completionNoticeTemplate.Execute(&htmlBuf, completionNoticeData{
		Name:         name,
		ProgramTitle: programTitle,
		DurationDays: durationDays,
	})
	if err != nil {
		return "", "", "", err
	}

	return subject, textBody, htmlBuf.String(), nil
}
