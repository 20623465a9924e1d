package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-match/internal/compatibility"
	"persona-match/internal/service"
)

type CompatibilityService interface {
	Score(ctx context.Context, viewerID, targetID string) (service.PairScore, error)
	Recommend(ctx context.Context, viewerID string) ([]compatibility.Ranked, error)
}

// CompatibilityHandler mantiene dependencias para endpoints de compatibilidad.
type CompatibilityHandler struct {
	logger *zap.Logger
	svc    CompatibilityService
}

func NewCompatibilityHandler(logger *zap.Logger, svc CompatibilityService) *CompatibilityHandler {
	return &CompatibilityHandler{logger: logger, svc: svc}
}

// Score maneja GET /compatibility/:user_id.
func (h *CompatibilityHandler) Score(c *gin.Context) {
	viewerID, ok := callerID(c)
	if !ok {
		return
	}
	targetID := strings.TrimSpace(c.Param("user_id"))
	if targetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := h.svc.Score(c.Request.Context(), viewerID, targetID)
	if err != nil {
		writeServiceError(c, h.logger, "score compatibility", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"compatibility": res})
}

// Recommendations maneja GET /recommendations.
func (h *CompatibilityHandler) Recommendations(c *gin.Context) {
	viewerID, ok := callerID(c)
	if !ok {
		return
	}
	ranked, err := h.svc.Recommend(c.Request.Context(), viewerID)
	if err != nil {
		writeServiceError(c, h.logger, "rank recommendations", err)
		return
	}
	if ranked == nil {
		ranked = []compatibility.Ranked{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": ranked})
}
