package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

const redacted = "REDACTED"

// sensitiveParams are query parameters that carry credentials.
var sensitiveParams = []string{"token", "access_token"}

// loggedPath returns the request path with credential query values replaced.
func loggedPath(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return u.Path
	}
	for _, key := range sensitiveParams {
		if _, ok := values[key]; ok {
			values.Set(key, redacted)
		}
	}
	return u.Path + "?" + values.Encode()
}

// GinZapLogger logs every request except health and metrics probes.
func GinZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		path = loggedPath(c.Request.URL)
		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", requestID),
		}

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors.ByType(gin.ErrorTypeAny) {
				log.Error("Request error", append(fields, zap.Error(ginErr.Err))...)
			}
			return
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("Server error", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Client error", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}
