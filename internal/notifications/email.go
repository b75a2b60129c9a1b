package notifications

import (
	"scoops/internal/config"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers messages over SMTP. With no SMTP host or from
// address configured it runs in no-op mode and reports "not configured"
// without attempting a connection.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailSender creates an email adapter from the notification config.
func NewEmailSender(cfg config.NotificationConfig) *EmailSender {
	if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
		return &EmailSender{}
	}
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

// Channel identifies this adapter's transport.
func (s *EmailSender) Channel() Channel {
	return ChannelEmail
}

// Send delivers one message to recipient. Failures are returned in the
// result, never as an error or panic.
func (s *EmailSender) Send(recipient string, msg Message) SendResult {
	if s.dialer == nil {
		return SendResult{Channel: ChannelEmail, Success: false, Detail: "not configured"}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return SendResult{Channel: ChannelEmail, Success: false, Detail: err.Error()}
	}
	return SendResult{Channel: ChannelEmail, Success: true, Detail: "sent"}
}
