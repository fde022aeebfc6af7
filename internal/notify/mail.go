package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// MailConfig SMTP sink configuration
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// MailSink delivers reminder notifications by email.
type MailSink struct {
	config MailConfig
	dialer *gomail.Dialer
}

func NewMailSink(c MailConfig) *MailSink {
	return &MailSink{
		config: c,
		dialer: gomail.NewDialer(c.Host, c.Port, c.Username, c.Password),
	}
}

func (s *MailSink) Name() string {
	return "mail"
}

func (s *MailSink) Send(_ context.Context, n Notification) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", s.config.To)
	m.SetHeader("Subject", fmt.Sprintf("Reminder: %s", n.Title))
	// The note id header lets mail clients thread repeated fires for the
	// same note together, mirroring the replace semantics of the center.
	m.SetHeader("X-Note-ID", fmt.Sprintf("%d", n.NoteID))
	m.SetBody("text/plain", n.Body)

	return s.dialer.DialAndSend(m)
}
