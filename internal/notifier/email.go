package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"LeapsRadar/internal/model"
)

// EmailNotifier sends the report over SMTP.
type EmailNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// NewEmailNotifier creates an SMTP notifier. Username may be empty for an
// unauthenticated relay.
func NewEmailNotifier(host string, port int, username, password, from string, to []string) *EmailNotifier {
	return &EmailNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
	}
}

func (e *EmailNotifier) Name() string { return "email" }

// Deliver sends the markdown report as a plain-text message.
func (e *EmailNotifier) Deliver(_ context.Context, report *model.ScanReport) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", e.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(e.To, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", FormatIssueTitle(report)))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(FormatMarkdownBody(report))

	var auth smtp.Auth
	if e.Username != "" {
		auth = smtp.PlainAuth("", e.Username, e.Password, e.Host)
	}
	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	if err := smtp.SendMail(addr, auth, e.From, e.To, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
