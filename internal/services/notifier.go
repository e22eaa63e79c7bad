package services

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	intconfig "travelbuddies/internal/config"
)

var ErrNotifierDisabled = errors.New("smtp notifier not configured")

// Notifier delivers a plain-text lead message to the agency inbox.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

// SMTPNotifier sends mail with net/smtp. Send replaces smtp.SendMail in tests.
type SMTPNotifier struct {
	Config intconfig.SMTPConfig
	Send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (n SMTPNotifier) Notify(ctx context.Context, to, subject, body string) error {
	if !n.Config.Configured() {
		return ErrNotifierDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if n.Config.Username != "" {
		auth = smtp.PlainAuth("", n.Config.Username, n.Config.Password, n.Config.Host)
	}
	send := n.Send
	if send == nil {
		send = smtp.SendMail
	}

	addr := n.Config.Host + ":" + n.Config.Port
	if err := send(addr, auth, n.Config.From, []string{to}, composeMessage(n.Config, to, subject, body)); err != nil {
		return fmt.Errorf("send lead mail: %w", err)
	}
	return nil
}

func composeMessage(cfg intconfig.SMTPConfig, to, subject, body string) []byte {
	// Header values come from visitor input; strip line breaks so they cannot add headers.
	clean := strings.NewReplacer("\r", " ", "\n", " ")
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", clean.Replace(cfg.FromName), cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", clean.Replace(to))
	fmt.Fprintf(&b, "Subject: %s\r\n", clean.Replace(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
