package service

import "context"

// EmailAttachment is a file on local disk attached to an email.
type EmailAttachment struct {
	Filename string
	Path     string
}

// EmailMessage is a single outbound HTML email.
type EmailMessage struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []EmailAttachment
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}
