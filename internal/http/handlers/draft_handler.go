// README: Draft handlers; address, tariff and payment edits plus the estimate.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/http/middleware"
	"glazovcab/internal/modules/draft"
	"glazovcab/internal/modules/geo"
	"glazovcab/internal/modules/pricing"
	"glazovcab/internal/types"
)

type DraftHandler struct {
	sessions *Sessions
}

func NewDraftHandler(sessions *Sessions) *DraftHandler {
	return &DraftHandler{sessions: sessions}
}

func (h *DraftHandler) draft(c *gin.Context) *draft.Draft {
	return h.sessions.For(types.ID(middleware.CallerID(c))).Draft
}

type draftResponse struct {
	FromAddress  string       `json:"from_address"`
	ToAddress    string       `json:"to_address"`
	From         *types.Point `json:"from,omitempty"`
	To           *types.Point `json:"to,omitempty"`
	FromDistrict geo.District `json:"from_district,omitempty"`
	ToDistrict   geo.District `json:"to_district,omitempty"`
	Tariff       string       `json:"tariff"`
	Payment      string       `json:"payment_method"`
	DistanceKm   float64      `json:"distance_km"`
	DurationMin  int          `json:"duration_min"`
	Price        int64        `json:"price"`
}

func draftJSON(s draft.Snapshot) draftResponse {
	resp := draftResponse{
		FromAddress: s.FromAddress,
		ToAddress:   s.ToAddress,
		From:        s.From,
		To:          s.To,
		Tariff:      string(s.Tariff),
		Payment:     string(s.Payment),
		DistanceKm:  s.DistanceKm,
		DurationMin: s.DurationMin,
		Price:       s.Price,
	}
	if s.From != nil {
		resp.FromDistrict = geo.DetectDistrict(*s.From)
	}
	if s.To != nil {
		resp.ToDistrict = geo.DetectDistrict(*s.To)
	}
	return resp
}

func (h *DraftHandler) Get(c *gin.Context) {
	writeJSON(c, http.StatusOK, draftJSON(h.draft(c).Snapshot()))
}

type addressReq struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// point returns the resolved coordinate, or nil when the client sent address
// text only. Half a coordinate is rejected upstream.
func (r addressReq) point() (*types.Point, bool) {
	if r.Lat == nil && r.Lng == nil {
		return nil, true
	}
	if r.Lat == nil || r.Lng == nil {
		return nil, false
	}
	return &types.Point{Lat: *r.Lat, Lng: *r.Lng}, true
}

func (h *DraftHandler) SetOrigin(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pt, ok := req.point()
	if !ok {
		writeError(c, http.StatusBadRequest, "lat and lng must be sent together")
		return
	}
	d := h.draft(c)
	d.SetOrigin(req.Address, pt)
	writeJSON(c, http.StatusOK, draftJSON(d.Snapshot()))
}

func (h *DraftHandler) SetDestination(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pt, ok := req.point()
	if !ok {
		writeError(c, http.StatusBadRequest, "lat and lng must be sent together")
		return
	}
	d := h.draft(c)
	d.SetDestination(req.Address, pt)
	writeJSON(c, http.StatusOK, draftJSON(d.Snapshot()))
}

func (h *DraftHandler) ClearOrigin(c *gin.Context) {
	d := h.draft(c)
	d.ClearOrigin()
	writeJSON(c, http.StatusOK, draftJSON(d.Snapshot()))
}

func (h *DraftHandler) ClearDestination(c *gin.Context) {
	d := h.draft(c)
	d.ClearDestination()
	writeJSON(c, http.StatusOK, draftJSON(d.Snapshot()))
}

type tariffReq struct {
	Tariff string `json:"tariff"`
}

func (h *DraftHandler) SetTariff(c *gin.Context) {
	var req tariffReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	t := pricing.Tariff(req.Tariff)
	if !t.Valid() {
		writeError(c, http.StatusBadRequest, "unknown tariff")
		return
	}
	d := h.draft(c)
	d.SetTariff(t)
	writeJSON(c, http.StatusOK, draftJSON(d.Snapshot()))
}

type paymentReq struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *DraftHandler) SetPayment(c *gin.Context) {
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	m := pricing.PaymentMethod(req.PaymentMethod)
	if !m.Valid() {
		writeError(c, http.StatusBadRequest, "unknown payment method")
		return
	}
	d := h.draft(c)
	d.SetPaymentMethod(m)
	writeJSON(c, http.StatusOK, draftJSON(d.Snapshot()))
}

func (h *DraftHandler) Reset(c *gin.Context) {
	d := h.draft(c)
	d.Reset()
	writeJSON(c, http.StatusOK, draftJSON(d.Snapshot()))
}
