package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"storykeep/internal/delivery/http/middleware"
)

const defaultOrigin = "http://localhost:3000"

// LiveSearch serves the search-as-you-type websocket.
type LiveSearch interface {
	ServeWS(c *gin.Context)
}

// RouterOptions carries the settings of NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	// Metrics mounts the gin request metrics on /metrics.
	Metrics bool
}

// NewRouter builds the gin engine with all middleware and routes.
func NewRouter(h *Handler, live LiveSearch, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{defaultOrigin}
		logger.Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", defaultOrigin))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if live != nil {
		router.GET("/ws/search", live.ServeWS)
	}
	h.RegisterRoutes(router)

	// after the routes so every handler is instrumented
	if opts.Metrics {
		ginprometheus.NewPrometheus("gin").Use(router)
	}
	return router
}
