package services

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	intconfig "travelbuddies/internal/config"
)

func TestSMTPNotifierDisabled(t *testing.T) {
	n := SMTPNotifier{}
	if err := n.Notify(context.Background(), "a@b.co", "s", "b"); !errors.Is(err, ErrNotifierDisabled) {
		t.Fatalf("expected ErrNotifierDisabled, got %v", err)
	}
}

func TestSMTPNotifierSends(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	n := SMTPNotifier{
		Config: intconfig.SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p", From: "site@example.com", FromName: "Travel Buddies Website"},
		Send: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, string(msg)
			return nil
		},
	}
	err := n.Notify(context.Background(), "agency@example.com", "Booking Request: Shimla\r\nBcc: x@y.z", "line1\nline2")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if gotAddr != "smtp.example.com:587" || gotFrom != "site@example.com" || gotAuth == nil {
		t.Fatalf("unexpected envelope addr=%s from=%s auth=%v", gotAddr, gotFrom, gotAuth)
	}
	if len(gotTo) != 1 || gotTo[0] != "agency@example.com" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}
	if strings.Contains(gotMsg, "\r\nBcc:") {
		t.Fatalf("header injection not stripped:\n%s", gotMsg)
	}
	if !strings.Contains(gotMsg, "line1\r\nline2") {
		t.Fatalf("body line endings not normalised:\n%s", gotMsg)
	}
	if !strings.Contains(gotMsg, "From: Travel Buddies Website <site@example.com>\r\n") {
		t.Fatalf("from header missing:\n%s", gotMsg)
	}
}

func TestSMTPNotifierWrapsSendError(t *testing.T) {
	boom := errors.New("connection refused")
	n := SMTPNotifier{
		Config: intconfig.SMTPConfig{Host: "smtp.example.com", Port: "25", From: "site@example.com"},
		Send: func(string, smtp.Auth, string, []string, []byte) error {
			return boom
		},
	}
	if err := n.Notify(context.Background(), "a@b.co", "s", "b"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestSMTPNotifierHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := SMTPNotifier{
		Config: intconfig.SMTPConfig{Host: "smtp.example.com", Port: "25", From: "site@example.com"},
		Send: func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("send should not be called")
			return nil
		},
	}
	if err := n.Notify(ctx, "a@b.co", "s", "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
