package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-assistant/internal/domain"
	"portfolio-assistant/internal/knowledge"
	"portfolio-assistant/internal/llm"
	"portfolio-assistant/internal/prompt"
)

const (
	// DefaultChatTimeout es el techo de duracion de una llamada completa.
	DefaultChatTimeout = 30 * time.Second
	// ChatTemperature se mantiene baja para respuestas breves y consistentes.
	ChatTemperature = 0.3
)

var (
	ErrInvalidConversation = errors.New("invalid conversation")
	ErrChatTimeout         = errors.New("chat completion timed out")
)

// StreamSink recibe el inicio del turno assistant y cada delta en orden.
type StreamSink interface {
	Start(messageID string) error
	Delta(text string) error
}

// ChatGateway adjunta las instrucciones de grounding y reenvia el stream del proveedor.
type ChatGateway struct {
	llmClient llm.LLMClient
	source    knowledge.Source
	composer  prompt.Composer
	timeout   time.Duration
	logger    *zap.Logger
}

func NewChatGateway(llmClient llm.LLMClient, source knowledge.Source, composer prompt.Composer, logger *zap.Logger) *ChatGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatGateway{
		llmClient: llmClient,
		source:    source,
		composer:  composer,
		timeout:   DefaultChatTimeout,
		logger:    logger,
	}
}

// WithTimeout cambia el techo de duracion; valores <= 0 se ignoran.
func (g *ChatGateway) WithTimeout(d time.Duration) *ChatGateway {
	if d > 0 {
		g.timeout = d
	}
	return g
}

// ValidateTurns exige una conversacion no vacia con roles user/assistant.
func ValidateTurns(turns []domain.Turn) error {
	if len(turns) == 0 {
		return fmt.Errorf("%w: no turns", ErrInvalidConversation)
	}
	for i, t := range turns {
		if t.Role != domain.RoleUser && t.Role != domain.RoleAssistant {
			return fmt.Errorf("%w: turn %d has role %q", ErrInvalidConversation, i, t.Role)
		}
	}
	return nil
}

// Stream produce un unico turno assistant. Devuelve nil al completar o un error si falla
// el proveedor, se corta el llamador o se excede el timeout.
func (g *ChatGateway) Stream(ctx context.Context, turns []domain.Turn, sink StreamSink) error {
	if err := ValidateTurns(turns); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	doc, err := g.source.Document(ctx)
	if err != nil {
		return fmt.Errorf("load knowledge: %w", err)
	}

	req := llm.ChatRequest{
		System:      g.composer.Compose(doc),
		Messages:    toChatMessages(turns),
		Temperature: ChatTemperature,
	}

	messageID := uuid.NewString()
	if err := sink.Start(messageID); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}

	start := time.Now()
	deltas := 0
	err = g.llmClient.StreamChat(ctx, req, func(delta string) error {
		deltas++
		return sink.Delta(delta)
	})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %v", ErrChatTimeout, g.timeout, err)
		}
		g.logger.Warn("chat stream failed",
			zap.String("message_id", messageID),
			zap.Int("deltas", deltas),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}

	g.logger.Info("chat stream finished",
		zap.String("message_id", messageID),
		zap.Int("deltas", deltas),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func toChatMessages(turns []domain.Turn) []llm.ChatMessage {
	out := make([]llm.ChatMessage, 0, len(turns))
	for _, t := range turns {
		out = append(out, llm.ChatMessage{Role: string(t.Role), Content: t.Text})
	}
	return out
}
