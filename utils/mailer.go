package utils

import (
	"fmt"
	"net/smtp"
	"strings"
)

// MailerConfig is injected at construction; the mailer reads no environment
// variables itself.
type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// PlainTextOnly skips the multipart HTML body (development mode).
	PlainTextOnly bool
}

type Mailer struct {
	cfg MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{
		cfg: cfg,
	}
}

// Send delivers one message. When an HTML body is given and the mailer is
// not in plain-text mode, the message goes out as multipart/alternative so
// older clients still get the text part.
func (m *Mailer) Send(to, subject, plainBody, htmlBody string) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	msg := m.buildMessage(to, subject, plainBody, htmlBody)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}

func (m *Mailer) buildMessage(to, subject, plainBody, htmlBody string) []byte {
	var msg strings.Builder
	msg.WriteString("From: " + m.cfg.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")

	if htmlBody == "" || m.cfg.PlainTextOnly {
		msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(plainBody + "\r\n")
	} else {
		const boundary = "=_kitty_boundary"
		msg.WriteString("Content-Type: multipart/alternative; boundary=\"" + boundary + "\"\r\n")
		msg.WriteString("\r\n")
		msg.WriteString("--" + boundary + "\r\n")
		msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
		msg.WriteString(plainBody + "\r\n")
		msg.WriteString("--" + boundary + "\r\n")
		msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
		msg.WriteString(htmlBody + "\r\n")
		msg.WriteString("--" + boundary + "--\r\n")
	}

	return []byte(msg.String())
}
