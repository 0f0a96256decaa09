package mocks

import (
	"context"
)

// Mailer is a simple implementation of the task.Mailer interface.
type Mailer struct {
	SendCompletionNoticeFunc func(ctx context.Context, to, name, programTitle string, durationDays int) error
}

// SendCompletionNotice delivers a completion notice email.
func (m *Mailer) SendCompletionNotice(ctx context.Context, to, name, programTitle string, durationDays int) error {
	if m.SendCompletionNoticeFunc != nil {
		return m.SendCompletionNoticeFunc(ctx, to, name, programTitle, durationDays)
	}
	return nil
}
