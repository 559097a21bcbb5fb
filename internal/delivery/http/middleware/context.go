package middleware

import (
	"github.com/gin-gonic/gin"

	"storykeep/internal/auth"
	"storykeep/internal/service"
	"storykeep/internal/session"
)

const (
	sessionKey   = "session"
	claimsKey    = "claims"
	collectorKey = "collector"
)

// SessionFrom returns the session set by Auth, or an empty session.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return session.New()
}

// ClaimsFrom returns the verified token claims set by Auth.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// Messages returns the user-visible messages produced so far by the request.
func Messages(c *gin.Context) []string {
	if v, ok := c.Get(collectorKey); ok {
		if col, ok := v.(*service.Collector); ok {
			return col.Messages()
		}
	}
	return nil
}

// Notifications attaches a message collector to every request context.
func Notifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		col := &service.Collector{}
		c.Set(collectorKey, col)
		c.Request = c.Request.WithContext(service.WithNotifier(c.Request.Context(), col))
		c.Next()
	}
}
