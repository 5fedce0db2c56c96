package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-assistant/internal/domain"
	"portfolio-assistant/internal/service"
)

// ContactHandler recibe el formulario de contacto.
type ContactHandler struct {
	logger   *zap.Logger
	contacts *service.ContactService
}

func NewContactHandler(logger *zap.Logger, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{logger: logger, contacts: contacts}
}

// SubmitContact maneja POST /api/contact.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required,min=2"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required,min=5"`
		Message string `json:"message" binding:"required,min=10"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid contact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.contacts.Submit(c.Request.Context(), domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	switch {
	case errors.Is(err, service.ErrContactUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contact form unavailable"})
		return
	case err != nil:
		h.logger.Error("contact submit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
