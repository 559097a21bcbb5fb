package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storykeep/internal/delivery/http/middleware"
	"storykeep/internal/model"
)

func (h *Handler) listStories(c *gin.Context) {
	respondList(c, h.stories.List(c.Request.Context(), middleware.SessionFrom(c)))
}

func (h *Handler) searchStories(c *gin.Context) {
	searchesTotal.WithLabelValues("stories").Inc()
	respondList(c, h.stories.Search(c.Request.Context(), middleware.SessionFrom(c), c.Query("q")))
}

func (h *Handler) createStory(c *gin.Context) {
	var req model.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, model.ErrBadRequest)
		return
	}

	story := &model.Story{Title: req.Title, Genre: req.Genre, Status: model.StoryStatus(req.Status), Synopsis: req.Synopsis}
	created, err := h.stories.Create(c.Request.Context(), middleware.SessionFrom(c), story)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	entriesCreatedTotal.WithLabelValues(string(model.KindStory)).Inc()
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getStory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	story, found := h.stories.Get(c.Request.Context(), middleware.SessionFrom(c), id)
	if !found {
		handleServiceError(c, model.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *Handler) updateStory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, model.ErrBadRequest)
		return
	}
	status, err := model.ParseStoryStatus(req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	story := &model.Story{ID: id, Title: req.Title, Genre: req.Genre, Status: status, Synopsis: req.Synopsis}
	h.stories.Update(c.Request.Context(), middleware.SessionFrom(c), story)
	respondResult(c, len(middleware.Messages(c)) == 0)
}

func (h *Handler) deleteStory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.stories.Delete(c.Request.Context(), middleware.SessionFrom(c), id)
	respondResult(c, len(middleware.Messages(c)) == 0)
}
