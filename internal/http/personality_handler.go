package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-match/internal/domain"
	"persona-match/internal/personality"
	"persona-match/internal/service"
)

// PersonalityService es lo que el handler necesita de service.PersonalityService.
type PersonalityService interface {
	Recompute(ctx context.Context, userID string) (service.InferenceResult, error)
	RefreshProfileType(ctx context.Context, userID string) (service.RefreshResult, error)
	SubmitQuiz(ctx context.Context, userID string, answers []string) (personality.QuizResult, error)
	History(ctx context.Context, userID string, limit int) ([]domain.PersonalityHistoryEntry, error)
	Insights(ctx context.Context, userID string) (service.Insights, error)
}

// PersonalityHandler expone inferencia, cuestionario e historial del usuario autenticado.
type PersonalityHandler struct {
	logger *zap.Logger
	svc    PersonalityService
}

func NewPersonalityHandler(logger *zap.Logger, svc PersonalityService) *PersonalityHandler {
	return &PersonalityHandler{logger: logger, svc: svc}
}

// Recompute maneja POST /personality/recompute.
func (h *PersonalityHandler) Recompute(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	res, err := h.svc.Recompute(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.logger, "recompute personality", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

// Refresh maneja POST /personality/refresh.
func (h *PersonalityHandler) Refresh(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	res, err := h.svc.RefreshProfileType(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.logger, "refresh profile type", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

// SubmitQuiz maneja POST /personality/quiz.
func (h *PersonalityHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req struct {
		Answers []string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quiz request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := h.svc.SubmitQuiz(c.Request.Context(), userID, req.Answers)
	if err != nil {
		writeServiceError(c, h.logger, "submit quiz", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

// History maneja GET /personality/history?limit=N.
func (h *PersonalityHandler) History(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	entries, err := h.svc.History(c.Request.Context(), userID, limit)
	if err != nil {
		writeServiceError(c, h.logger, "list history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// Insights maneja GET /personality/insights.
func (h *PersonalityHandler) Insights(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	res, err := h.svc.Insights(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.logger, "load insights", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": res})
}

// DescribeType maneja GET /types/:type. No requiere autenticación.
func (h *PersonalityHandler) DescribeType(c *gin.Context) {
	t, err := domain.ParseType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	desc, ok := personality.Describe(t)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": desc})
}

func callerID(c *gin.Context) (string, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok || claims.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return claims.UserID, true
}

func writeServiceError(c *gin.Context, logger *zap.Logger, action string, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	case errors.Is(err, service.ErrInvalidQuiz),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrSelfCompatibility):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(action+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not " + action})
	}
}
