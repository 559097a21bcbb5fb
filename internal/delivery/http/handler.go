package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storykeep/internal/delivery/http/middleware"
	"storykeep/internal/model"
	"storykeep/internal/service"
)

// UserDisconnector closes live connections of a deleted user.
type UserDisconnector interface {
	DisconnectUser(userID int64) int
}

// Handler serves the JSON API.
type Handler struct {
	users      service.UserService
	stories    service.StoryService
	characters service.CharacterService
	traits     service.TraitService
	journal    *service.Journal
	auth       service.AuthService
	live       UserDisconnector
	logger     *zap.Logger
}

func NewHandler(
	users service.UserService,
	stories service.StoryService,
	characters service.CharacterService,
	traits service.TraitService,
	journal *service.Journal,
	authService service.AuthService,
	live UserDisconnector,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		users:      users,
		stories:    stories,
		characters: characters,
		traits:     traits,
		journal:    journal,
		auth:       authService,
		live:       live,
		logger:     logger.Named("HTTPHandler"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.Use(middleware.Notifications())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/username/:username", h.usernameExists)
		authGroup.POST("/logout", middleware.Auth(h.auth), h.logout)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(h.auth))
	{
		protected.DELETE("/users/:id", h.deleteUser)

		protected.GET("/stories", h.listStories)
		protected.POST("/stories", h.createStory)
		protected.GET("/stories/search", h.searchStories)
		protected.GET("/stories/:id", h.getStory)
		protected.PUT("/stories/:id", h.updateStory)
		protected.DELETE("/stories/:id", h.deleteStory)

		protected.GET("/characters", h.listCharacters)
		protected.POST("/characters", h.createCharacter)
		protected.GET("/characters/search", h.searchCharacters)
		protected.GET("/characters/:id", h.getCharacter)
		protected.PUT("/characters/:id", h.updateCharacter)
		protected.DELETE("/characters/:id", h.deleteCharacter)

		protected.GET("/traits", h.listTraits)
		protected.POST("/traits", h.addTrait)
		protected.GET("/traits/search", h.searchTraits)
		protected.GET("/traits/:name/exists", h.traitExists)
		protected.PUT("/traits/:name", h.renameTrait)
		protected.DELETE("/traits/:name", h.deleteTrait)

		protected.GET("/entries", h.listEntries)
		protected.GET("/entries/search", h.searchEntries)
		protected.GET("/entries/:kind/:id", h.getEntry)
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		handleServiceError(c, model.ErrBadRequest)
		return 0, false
	}
	return id, true
}
