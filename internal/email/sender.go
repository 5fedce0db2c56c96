package email

import (
	"context"
	"errors"
	"fmt"

	"portfolio-assistant/internal/domain"
)

var ErrDisabled = errors.New("email sender disabled")

// Sender define la interfaz para entregar mensajes del formulario de contacto.
type Sender interface {
	SendContact(ctx context.Context, msg domain.ContactMessage) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendContact(_ context.Context, _ domain.ContactMessage) error {
	if s.reason == "" {
		return ErrDisabled
	}
	return fmt.Errorf("%w: %s", ErrDisabled, s.reason)
}
