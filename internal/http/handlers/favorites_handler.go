// README: Favorite address handlers.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"glazovcab/internal/modules/favorites"
)

type FavoritesHandler struct {
	store *favorites.Store
}

func NewFavoritesHandler(store *favorites.Store) *FavoritesHandler {
	return &FavoritesHandler{store: store}
}

func (h *FavoritesHandler) List(c *gin.Context) {
	addrs, err := h.store.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if addrs == nil {
		addrs = []favorites.Address{}
	}
	writeJSON(c, http.StatusOK, gin.H{"favorites": addrs})
}

// Save inserts a favorite, or replaces it when the client sends an id.
func (h *FavoritesHandler) Save(c *gin.Context) {
	var a favorites.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(a.Label) == "" || strings.TrimSpace(a.Address) == "" {
		writeError(c, http.StatusBadRequest, "label and address are required")
		return
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := h.store.InsertOrReplace(c.Request.Context(), a); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, a)
}

func (h *FavoritesHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing favorite id")
		return
	}
	if err := h.store.DeleteByID(c.Request.Context(), id); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": id})
}
