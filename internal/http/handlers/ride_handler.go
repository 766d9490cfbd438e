// README: Ride lifecycle handlers; submit, state, cancel, rating.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/http/middleware"
	"glazovcab/internal/modules/ride"
	"glazovcab/internal/types"
)

type RideHandler struct {
	sessions *Sessions
}

func NewRideHandler(sessions *Sessions) *RideHandler {
	return &RideHandler{sessions: sessions}
}

func (h *RideHandler) session(c *gin.Context) (types.ID, *ride.Session) {
	id := types.ID(middleware.CallerID(c))
	return id, h.sessions.For(id).Ride
}

func (h *RideHandler) Submit(c *gin.Context) {
	userID, s := h.session(c)
	st, err := s.Submit(c.Request.Context(), userID)
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusAccepted, stateJSON(st))
}

func (h *RideHandler) State(c *gin.Context) {
	_, s := h.session(c)
	writeJSON(c, http.StatusOK, stateJSON(s.State()))
}

func (h *RideHandler) Cancel(c *gin.Context) {
	_, s := h.session(c)
	st, err := s.Cancel(c.Request.Context())
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateJSON(st))
}

type ratingReq struct {
	Rating int   `json:"rating"`
	Tip    int64 `json:"tip"`
}

func (h *RideHandler) Rate(c *gin.Context) {
	var req ratingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	_, s := h.session(c)
	st, err := s.Rate(c.Request.Context(), req.Rating, req.Tip)
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateJSON(st))
}

// ClearError acknowledges a surfaced submission or channel error.
func (h *RideHandler) ClearError(c *gin.Context) {
	_, s := h.session(c)
	writeJSON(c, http.StatusOK, stateJSON(s.ClearError()))
}
