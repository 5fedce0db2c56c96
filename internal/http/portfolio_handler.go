package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-assistant/internal/knowledge"
)

// PortfolioHandler sirve el documento de datos del portfolio.
type PortfolioHandler struct {
	logger *zap.Logger
	source knowledge.Source
}

func NewPortfolioHandler(logger *zap.Logger, source knowledge.Source) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, source: source}
}

// GetPortfolio maneja GET /api/portfolio.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	doc, err := h.source.Document(c.Request.Context())
	if err != nil {
		h.logger.Error("load portfolio failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load portfolio"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc.JSON())
}
