package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-assistant/internal/domain"
	"portfolio-assistant/internal/service"
)

// ChatHandler expone el gateway de streaming.
type ChatHandler struct {
	logger  *zap.Logger
	gateway *service.ChatGateway
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, gateway *service.ChatGateway) *ChatHandler {
	return &ChatHandler{
		logger:  logger,
		gateway: gateway,
	}
}

type chatRequest struct {
	Messages []chatTurn `json:"messages" binding:"required,min=1,dive"`
}

// chatTurn acepta content plano o parts tipadas.
type chatTurn struct {
	ID      string        `json:"id"`
	Role    domain.Role   `json:"role" binding:"required,oneof=user assistant"`
	Content string        `json:"content"`
	Parts   []domain.Part `json:"parts"`
}

func (t chatTurn) toTurn() domain.Turn {
	text := t.Content
	if len(t.Parts) > 0 {
		text = domain.ExtractText(t.Parts)
	}
	return domain.Turn{Role: t.Role, Text: text}
}

// StreamChat maneja POST /api/chat.
func (h *ChatHandler) StreamChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	turns := make([]domain.Turn, 0, len(req.Messages))
	for _, m := range req.Messages {
		turns = append(turns, m.toTurn())
	}
	if err := service.ValidateTurns(turns); err != nil {
		h.logger.Warn("invalid chat conversation", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	stream := newEventStream(c)
	err := h.gateway.Stream(c.Request.Context(), turns, stream)
	if err != nil {
		if c.Request.Context().Err() != nil {
			h.logger.Info("chat client disconnected", zap.Error(err))
			return
		}
		stream.Fail(errorText(err))
		return
	}
	stream.Finish()
}

func errorText(err error) string {
	if errors.Is(err, service.ErrChatTimeout) {
		return "The assistant took too long to respond."
	}
	return "An error occurred."
}
