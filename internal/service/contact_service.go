package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio-assistant/internal/domain"
	"portfolio-assistant/internal/email"
)

var ErrContactUnavailable = errors.New("contact delivery unavailable")

// ContactService entrega los mensajes del formulario de contacto.
type ContactService struct {
	sender email.Sender
	logger *zap.Logger
	now    func() time.Time
}

func NewContactService(sender email.Sender, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{sender: sender, logger: logger, now: time.Now}
}

func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	if s.sender == nil {
		return ErrContactUnavailable
	}
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Body = strings.TrimSpace(msg.Body)
	msg.ReceivedAt = s.now().UTC()

	if err := s.sender.SendContact(ctx, msg); err != nil {
		if errors.Is(err, email.ErrDisabled) {
			return fmt.Errorf("%w: %v", ErrContactUnavailable, err)
		}
		s.logger.Error("contact delivery failed", zap.String("email", msg.Email), zap.Error(err))
		return fmt.Errorf("send contact: %w", err)
	}
	s.logger.Info("contact message delivered", zap.String("email", msg.Email))
	return nil
}
