// README: Ride history handlers; local archive is list-and-delete only.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/modules/history"
)

type HistoryHandler struct {
	store *history.Store
}

func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

func (h *HistoryHandler) List(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	writeJSON(c, http.StatusOK, gin.H{"rides": records})
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing ride id")
		return
	}
	if err := h.store.DeleteByID(c.Request.Context(), id); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": id})
}
