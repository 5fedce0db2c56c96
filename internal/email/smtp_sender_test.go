package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio-assistant/internal/domain"
)

func TestNewSMTPSenderValidation(t *testing.T) {
	if _, err := NewSMTPSender("", 0, "", "", "from@example.com", "", "to@example.com", false); err == nil {
		t.Fatalf("expected host error")
	}
	if _, err := NewSMTPSender("smtp.example.com", 0, "", "", "", "", "to@example.com", false); err == nil {
		t.Fatalf("expected from error")
	}
	if _, err := NewSMTPSender("smtp.example.com", 0, "", "", "from@example.com", "", "", false); err == nil {
		t.Fatalf("expected recipient error")
	}
	s, err := NewSMTPSender("smtp.example.com", 0, "", "", "from@example.com", "", "to@example.com", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.port != 587 {
		t.Fatalf("expected default port 587, got %d", s.port)
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := buildMessage("noreply@example.com", "Portfolio", "me@example.com", "visitor@example.com", "[Portfolio] Hello", "body")
	for _, want := range []string{
		"From: Portfolio <noreply@example.com>\r\n",
		"To: me@example.com\r\n",
		"Reply-To: visitor@example.com\r\n",
		"Subject: [Portfolio] Hello\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing header %q in %q", want, msg)
		}
	}
	if !strings.HasSuffix(msg, "\r\n\r\nbody") {
		t.Fatalf("body not separated from headers: %q", msg)
	}
}

func TestSanitizeHeaderStripsNewlines(t *testing.T) {
	if got := sanitizeHeader(" hi\r\nBcc: x@example.com "); strings.ContainsAny(got, "\r\n") {
		t.Fatalf("header injection not prevented: %q", got)
	}
}

func TestDisabledSender(t *testing.T) {
	err := NewDisabledSender("smtp not configured").SendContact(context.Background(), domain.ContactMessage{})
	if !errors.Is(err, ErrDisabled) || !strings.Contains(err.Error(), "smtp not configured") {
		t.Fatalf("unexpected error %v", err)
	}
}
