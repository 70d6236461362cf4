package notify

import (
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/booking-api/internal/config"
)

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

// LogMailer stands in for SMTP in local setups.
type LogMailer struct {
	Log zerolog.Logger
}

func (m LogMailer) Send(to, subject, _ string) error {
	m.Log.Info().Str("to", to).Str("subject", subject).Msg("email not sent, smtp disabled")
	return nil
}
