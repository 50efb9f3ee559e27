// Package mail sends transactional email for the consultation flow.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
)

// Mailer is the outbound email collaborator.  Failures are reported to the
// caller; nothing is retried here.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers mail over plain SMTP with STARTTLS, the way the
// assistant's mailbox provider expects.  Configuration comes from the
// environment.
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

// NewSMTPMailerFromEnv builds a mailer from SMTP_HOST, SMTP_PORT, SMTP_FROM
// and SMTP_PASSWORD, with gmail defaults for host and port.
func NewSMTPMailerFromEnv() *SMTPMailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		From:     os.Getenv("SMTP_FROM"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}

// Send delivers one plain-text message.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.From, to, subject, body)
	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
