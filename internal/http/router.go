package http

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-match/internal/service"
)

// HealthFunc verifica dependencias externas (base de datos).
type HealthFunc func(ctx context.Context) error

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	limiter service.RateLimiter,
	health HealthFunc,
	personalityH *PersonalityHandler,
	compatH *CompatibilityHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthHandler(health))
	r.GET("/types/:type", personalityH.DescribeType)

	authed := r.Group("", JWTAuthMiddleware(jwtSvc))

	p := authed.Group("/personality")
	p.POST("/recompute", RateLimitMiddleware(limiter, "recompute"), personalityH.Recompute)
	p.POST("/refresh", RateLimitMiddleware(limiter, "refresh"), personalityH.Refresh)
	p.POST("/quiz", RateLimitMiddleware(limiter, "quiz"), personalityH.SubmitQuiz)
	p.GET("/history", personalityH.History)
	p.GET("/insights", personalityH.Insights)

	authed.GET("/compatibility/:user_id", compatH.Score)
	authed.GET("/recommendations", compatH.Recommendations)

	return r
}

func healthHandler(health HealthFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// RateLimitMiddleware consume la cuota de action del usuario autenticado; limiter nil no limita.
// Al agotarla responde 429 con Retry-After en segundos.
func RateLimitMiddleware(limiter service.RateLimiter, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.Next()
			return
		}
		d := limiter.Allow(c.Request.Context(), claims.UserID, action)
		if !d.Allowed {
			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":               "write quota exceeded",
				"action":              action,
				"retry_after_seconds": retry,
			})
			c.Abort()
			return
		}
		c.Header("X-Quota-Remaining", strconv.Itoa(d.Remaining))
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("caller_id", c.GetString(callerIDKey)),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
