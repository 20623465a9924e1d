package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"persona-match/internal/service"
)

const (
	authClaimsKey = "auth_claims"
	callerIDKey   = "caller_id"
)

// Motivos de rechazo que ve el cliente en {"error": "unauthorized", "reason": ...}.
const (
	authReasonMissing = "missing_bearer"
	authReasonExpired = "token_expired"
	authReasonInvalid = "token_invalid"
)

// JWTAuthMiddleware exige el access token emitido por el proveedor de identidad.
// El subject pasa a ser el usuario dueño de la personalidad y de la cuota de escrituras.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(header) < len("bearer ") || !strings.EqualFold(header[:len("bearer ")], "bearer ") {
			rejectAuth(c, authReasonMissing)
			return
		}

		claims, err := jwtSvc.ParseAccessToken(strings.TrimSpace(header[len("bearer "):]))
		switch {
		case errors.Is(err, service.ErrJWTExpired):
			rejectAuth(c, authReasonExpired)
			return
		case err != nil:
			rejectAuth(c, authReasonInvalid)
			return
		}

		c.Set(authClaimsKey, claims)
		c.Set(callerIDKey, claims.UserID)
		c.Next()
	}
}

func rejectAuth(c *gin.Context, reason string) {
	challenge := `Bearer realm="persona-match"`
	if reason != authReasonMissing {
		challenge += `, error="invalid_token"`
	}
	c.Header("WWW-Authenticate", challenge)
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "reason": reason})
	c.Abort()
}

// GetAuthClaims obtiene claims de JWT desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
