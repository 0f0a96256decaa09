// Package mailer delivers outbound email through SendGrid.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the task layer's Mailer port to SendGrid's v3 mail send API
// without exposing delivery details to the core application.
//
// Two implementations are provided:
//
//  1. SendGridMailer:
//     - Sends real email through the SendGrid API via the sendgrid-go client
//     - Renders the completion notice from an HTML template plus a plain
//       text alternative
//     - Treats non-2xx API responses as delivery failures
//
//  2. LogMailer:
//     - Records the notice in the structured log and reports success
//     - Used when no SendGrid API key is configured, so development and
//       test environments never send real email
//
// New selects between them based on config.MailerConfig.
package mailer
