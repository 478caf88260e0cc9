// Package notify sends customer-facing notifications: email with the work
// order attached, and WhatsApp deep links the front desk opens on their phone.
package notify

import (
	"errors"
	"io"

	"gopkg.in/gomail.v2"
)

// ErrMailNotConfigured is returned when SMTP credentials are missing.
// Notification endpoints degrade to an explicit error instead of silently
// dropping the message.
var ErrMailNotConfigured = errors.New("smtp is not configured")

// EmailRequest is a single outbound message with an optional PDF attachment.
type EmailRequest struct {
	To             string
	Subject        string
	Body           string
	Attachment     []byte
	AttachmentName string
}

// Mailer sends mail through the shop's SMTP account.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a Mailer. Returns a mailer even with empty credentials;
// Send reports ErrMailNotConfigured in that case so callers can surface a
// useful message.
func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

// Send delivers one message synchronously.
func (m *Mailer) Send(req EmailRequest) error {
	if m.dialer.Username == "" {
		return ErrMailNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", req.To)
	msg.SetHeader("Subject", req.Subject)
	msg.SetBody("text/plain", req.Body)

	if len(req.Attachment) > 0 {
		attachment := req.Attachment
		msg.Attach(req.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	return m.dialer.DialAndSend(msg)
}
