package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storykeep/internal/delivery/http/middleware"
	"storykeep/internal/model"
)

func (h *Handler) listTraits(c *gin.Context) {
	respondList(c, h.traits.List(c.Request.Context(), middleware.SessionFrom(c)))
}

func (h *Handler) searchTraits(c *gin.Context) {
	searchesTotal.WithLabelValues("traits").Inc()
	respondList(c, h.traits.Search(c.Request.Context(), middleware.SessionFrom(c), c.Query("q")))
}

func (h *Handler) addTrait(c *gin.Context) {
	var req model.TraitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, model.ErrBadRequest)
		return
	}
	ok := h.traits.Add(c.Request.Context(), middleware.SessionFrom(c), req.Name)
	if ok {
		c.JSON(http.StatusCreated, model.Result{OK: true, Messages: middleware.Messages(c)})
		return
	}
	respondResult(c, false)
}

func (h *Handler) renameTrait(c *gin.Context) {
	var req model.TraitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, model.ErrBadRequest)
		return
	}
	respondResult(c, h.traits.Rename(c.Request.Context(), middleware.SessionFrom(c), c.Param("name"), req.Name))
}

func (h *Handler) traitExists(c *gin.Context) {
	exists := h.traits.Exists(c.Request.Context(), middleware.SessionFrom(c), c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"exists": exists, "messages": middleware.Messages(c)})
}

func (h *Handler) deleteTrait(c *gin.Context) {
	respondResult(c, h.traits.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("name")))
}
