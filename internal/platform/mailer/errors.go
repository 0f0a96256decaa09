package mailer

import "errors"

// Error definitions for the mailer package.
var (
	// ErrNilLogger is returned when a constructor is given a nil logger.
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrMissingAPIKey is returned when NewSendGridMailer is called without
	// a SendGrid API key. Callers that want delivery disabled should use
	// New, which falls back to a LogMailer.
	ErrMissingAPIKey = errors.New("sendgrid API key cannot be empty")

	// ErrMissingFromAddress is returned when an API key is configured
	// without a sender address.
	ErrMissingFromAddress = errors.New("from address cannot be empty when a SendGrid API key is set")

	// ErrEmptyRecipient is returned when a notice has no destination address.
	ErrEmptyRecipient = errors.New("recipient address cannot be empty")
)
