package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storykeep/internal/delivery/http/middleware"
	"storykeep/internal/model"
)

func (h *Handler) listCharacters(c *gin.Context) {
	respondList(c, h.characters.List(c.Request.Context(), middleware.SessionFrom(c)))
}

func (h *Handler) searchCharacters(c *gin.Context) {
	searchesTotal.WithLabelValues("characters").Inc()
	respondList(c, h.characters.Search(c.Request.Context(), middleware.SessionFrom(c), c.Query("q")))
}

func (h *Handler) createCharacter(c *gin.Context) {
	var req model.CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, model.ErrBadRequest)
		return
	}

	character := &model.Character{Name: req.Name, Description: req.Description, Backstory: req.Backstory}
	created, err := h.characters.Create(c.Request.Context(), middleware.SessionFrom(c), character)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	entriesCreatedTotal.WithLabelValues(string(model.KindCharacter)).Inc()
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	character, found := h.characters.Get(c.Request.Context(), middleware.SessionFrom(c), id)
	if !found {
		handleServiceError(c, model.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) updateCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, model.ErrBadRequest)
		return
	}

	character := &model.Character{ID: id, Name: req.Name, Description: req.Description, Backstory: req.Backstory}
	h.characters.Update(c.Request.Context(), middleware.SessionFrom(c), character)
	respondResult(c, len(middleware.Messages(c)) == 0)
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.characters.Delete(c.Request.Context(), middleware.SessionFrom(c), id)
	respondResult(c, len(middleware.Messages(c)) == 0)
}
