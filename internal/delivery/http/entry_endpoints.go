package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storykeep/internal/delivery/http/middleware"
	"storykeep/internal/model"
)

func views(entries []model.Entry) []model.EntryView {
	out := make([]model.EntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.ViewOf(e))
	}
	return out
}

func (h *Handler) listEntries(c *gin.Context) {
	respondList(c, views(h.journal.List(c.Request.Context(), middleware.SessionFrom(c))))
}

func (h *Handler) searchEntries(c *gin.Context) {
	searchesTotal.WithLabelValues("entries").Inc()
	respondList(c, views(h.journal.Search(c.Request.Context(), middleware.SessionFrom(c), c.Query("q"))))
}

func (h *Handler) getEntry(c *gin.Context) {
	kind, err := model.ParseEntryKind(c.Param("kind"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, found := h.journal.Open(c.Request.Context(), middleware.SessionFrom(c), kind, id)
	if !found {
		handleServiceError(c, model.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, model.ViewOf(entry))
}
