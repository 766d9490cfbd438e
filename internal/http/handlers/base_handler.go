// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/modules/draft"
	"glazovcab/internal/modules/ride"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeRideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, draft.ErrIncompleteAddress), errors.Is(err, ride.ErrBadRating):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ride.ErrRideActive), errors.Is(err, ride.ErrNoActiveRide), errors.Is(err, ride.ErrNotCompleted):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// stateResponse is the wire form of the lifecycle state; it doubles as the
// WebSocket push payload.
type stateResponse struct {
	Type    string      `json:"type"`
	Phase   ride.Phase  `json:"phase"`
	OrderID string      `json:"order_id,omitempty"`
	Order   *ride.Order `json:"order,omitempty"`
	Message string      `json:"message,omitempty"`
}

func stateJSON(st ride.State) stateResponse {
	return stateResponse{
		Type:    "ride_state",
		Phase:   st.Phase,
		OrderID: string(st.OrderID),
		Order:   st.Order,
		Message: st.Message,
	}
}
