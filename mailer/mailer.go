package mailer

import (
	"errors"
	"fmt"
	"io"

	"HospitalMgmt/config"

	"gopkg.in/gomail.v2"
)

var ErrDisabled = errors.New("mail delivery is not configured")

// Attachment is an in-memory file sent with a message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is a plain text mail with optional HTML alternative.
type Message struct {
	To         string
	Subject    string
	Text       string
	HTML       string
	Attachment *Attachment
}

type Mailer interface {
	Send(msg Message) error
}

type smtpMailer struct {
	from   string
	dialer *gomail.Dialer
}

// New returns an SMTP mailer, or a mailer that always fails with
// ErrDisabled when SMTP_HOST is unset.
func New(cfg *config.AppConfig) Mailer {
	if !cfg.MailEnabled() {
		return disabled{}
	}
	return &smtpMailer{
		from:   cfg.SMTPUser,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

func (m *smtpMailer) Send(msg Message) error {
	if err := m.dialer.DialAndSend(Build(m.from, msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

// Build assembles the gomail message for msg.
func Build(from string, msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	if a := msg.Attachment; a != nil {
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(a.Data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
		}
		m.Attach(a.Name, settings...)
	}
	return m
}

type disabled struct{}

func (disabled) Send(Message) error {
	return ErrDisabled
}
