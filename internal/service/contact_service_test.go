package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-assistant/internal/domain"
	"portfolio-assistant/internal/email"
)

type mockContactSender struct {
	last  domain.ContactMessage
	calls int
	err   error
}

func (m *mockContactSender) SendContact(_ context.Context, msg domain.ContactMessage) error {
	m.calls++
	m.last = msg
	return m.err
}

func TestContactServiceSubmit(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("trims and stamps", func(t *testing.T) {
		sender := &mockContactSender{}
		svc := NewContactService(sender, nil)
		svc.now = func() time.Time { return fixed }

		err := svc.Submit(context.Background(), domain.ContactMessage{
			Name: "  Ada ", Email: " ada@example.com ", Subject: " Hello there ", Body: " A long enough body ",
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if sender.calls != 1 {
			t.Fatalf("expected one send, got %d", sender.calls)
		}
		if sender.last.Name != "Ada" || sender.last.Email != "ada@example.com" || sender.last.Body != "A long enough body" {
			t.Fatalf("fields not trimmed: %+v", sender.last)
		}
		if !sender.last.ReceivedAt.Equal(fixed) {
			t.Fatalf("unexpected timestamp %v", sender.last.ReceivedAt)
		}
	})

	t.Run("disabled sender maps to unavailable", func(t *testing.T) {
		svc := NewContactService(email.NewDisabledSender("not configured"), nil)
		if err := svc.Submit(context.Background(), domain.ContactMessage{}); !errors.Is(err, ErrContactUnavailable) {
			t.Fatalf("expected ErrContactUnavailable, got %v", err)
		}
	})

	t.Run("nil sender", func(t *testing.T) {
		svc := NewContactService(nil, nil)
		if err := svc.Submit(context.Background(), domain.ContactMessage{}); !errors.Is(err, ErrContactUnavailable) {
			t.Fatalf("expected ErrContactUnavailable, got %v", err)
		}
	})

	t.Run("delivery failure", func(t *testing.T) {
		boom := errors.New("smtp down")
		svc := NewContactService(&mockContactSender{err: boom}, nil)
		err := svc.Submit(context.Background(), domain.ContactMessage{})
		if !errors.Is(err, boom) || errors.Is(err, ErrContactUnavailable) {
			t.Fatalf("unexpected error %v", err)
		}
	})
}
