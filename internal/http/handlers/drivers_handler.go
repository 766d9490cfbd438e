// README: Nearby driver handler for map display.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/config"
	"glazovcab/internal/modules/drivers"
	"glazovcab/internal/types"
)

type DriversHandler struct {
	store *drivers.Store
	cfg   config.RideConfig
}

func NewDriversHandler(store *drivers.Store, cfg config.RideConfig) *DriversHandler {
	return &DriversHandler{store: store, cfg: cfg}
}

// Nearby returns cached driver markers around a point, closest first. With no
// query parameters it centers on the configured default with the default
// radius.
func (h *DriversHandler) Nearby(c *gin.Context) {
	center := h.cfg.DefaultCenter
	radius := h.cfg.DriverRadiusKm

	var err error
	if v := c.Query("lat"); v != "" {
		if center.Lat, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(c, http.StatusBadRequest, "invalid lat")
			return
		}
	}
	if v := c.Query("lng"); v != "" {
		if center.Lng, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(c, http.StatusBadRequest, "invalid lng")
			return
		}
	}
	if v := c.Query("radius_km"); v != "" {
		if radius, err = strconv.ParseFloat(v, 64); err != nil || radius <= 0 {
			writeError(c, http.StatusBadRequest, "invalid radius_km")
			return
		}
	}

	markers, err := h.store.Nearby(c.Request.Context(), types.Point{Lat: center.Lat, Lng: center.Lng}, radius)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if markers == nil {
		markers = []drivers.Marker{}
	}
	writeJSON(c, http.StatusOK, gin.H{"drivers": markers})
}
