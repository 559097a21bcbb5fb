package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"storykeep/internal/model"
	"storykeep/internal/service"
)

var tokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storykeep_token_verifications_total",
		Help: "Total number of access token verification attempts by status.",
	},
	[]string{"status"},
)

// Auth verifies the Bearer token and stores the resulting session and
// claims in the gin context.
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			zap.L().Warn("Missing or malformed Authorization header")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			abortWithTokenError(c, model.ErrTokenInvalid)
			return
		}

		sess, claims, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			zap.L().Warn("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			abortWithTokenError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(sessionKey, sess)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func abortWithTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrTokenExpired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Code: model.ErrCodeTokenExpired, Message: "Token has expired"})
	case errors.Is(err, model.ErrConnectionUnavailable):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, model.ErrorResponse{Code: model.ErrCodeUnavailable, Message: "Token store unavailable"})
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Code: model.ErrCodeTokenInvalid, Message: "Token is invalid, revoked or malformed"})
	}
}
