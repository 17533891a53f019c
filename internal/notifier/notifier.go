// Package notifier holds the outbound SMS and email clients. Both are
// fire-and-forget from the caller's point of view: the auth flow proceeds
// whether or not a message was actually delivered.
package notifier

import "context"

// SMSClient sends one-time passwords to a phone number.
type SMSClient interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// EmailClient sends one-time passwords to an email address.
type EmailClient interface {
	SendEmail(ctx context.Context, toEmail, subject, body string) error
}
