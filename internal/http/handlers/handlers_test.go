// README: Handler tests for login, draft editing and the ride lifecycle.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/config"
	"glazovcab/internal/http/handlers"
	httpmiddleware "glazovcab/internal/http/middleware"
	"glazovcab/internal/modules/history"
	"glazovcab/internal/modules/ride"
	"glazovcab/internal/types"
)

const (
	devUserID = "dev_user_001"
	devPhone  = "+79997770901"
)

// stubChannel is an in-memory test double for the remote order channel.
type stubChannel struct {
	updates chan ride.Update
	patches chan ride.Status
}

func newStubChannel() *stubChannel {
	return &stubChannel{
		updates: make(chan ride.Update, 16),
		patches: make(chan ride.Status, 16),
	}
}

func (s *stubChannel) Create(_ context.Context, o *ride.Order) (types.ID, error) {
	return o.ID, nil
}

func (s *stubChannel) Subscribe(_ context.Context, _ types.ID) (<-chan ride.Update, func(), error) {
	return s.updates, func() {}, nil
}

func (s *stubChannel) PatchStatus(_ context.Context, _ types.ID, st ride.Status) error {
	s.patches <- st
	return nil
}

func (s *stubChannel) PatchRating(_ context.Context, _ types.ID, _ int, _ int64) error {
	return nil
}

type stubArchive struct{}

func (stubArchive) InsertOrReplace(_ context.Context, _ history.Record) error { return nil }

func buildTestRouter(channel ride.Channel) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	rideCfg := config.RideConfig{
		DefaultCenter:  types.Point{Lat: 58.1387, Lng: 52.6584},
		DriverRadiusKm: 3.0,
	}
	sessions := handlers.NewSessions(channel, stubArchive{}, rideCfg, log)

	authHandler := handlers.NewAuthHandler(config.AuthConfig{DevPhone: devPhone, DevUserID: devUserID})
	draftHandler := handlers.NewDraftHandler(sessions)
	rideHandler := handlers.NewRideHandler(sessions)

	r := gin.New()
	r.POST("/api/auth/login", authHandler.Login)

	api := r.Group("/api", httpmiddleware.Gate(devUserID))
	api.GET("/draft", draftHandler.Get)
	api.PUT("/draft/origin", draftHandler.SetOrigin)
	api.DELETE("/draft/origin", draftHandler.ClearOrigin)
	api.PUT("/draft/destination", draftHandler.SetDestination)
	api.PUT("/draft/tariff", draftHandler.SetTariff)
	api.PUT("/draft/payment", draftHandler.SetPayment)
	api.POST("/ride/submit", rideHandler.Submit)
	api.GET("/ride/state", rideHandler.State)
	api.POST("/ride/cancel", rideHandler.Cancel)
	api.POST("/ride/rating", rideHandler.Rate)
	return r
}

func doRequest(r *gin.Engine, method, path string, body any, asUser string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set("X-User-ID", asUser)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return m
}

func TestLogin(t *testing.T) {
	r := buildTestRouter(newStubChannel())

	cases := []struct {
		name     string
		phone    string
		wantCode int
	}{
		{"exact dev phone", "+79997770901", http.StatusOK},
		{"formatted dev phone", "8 (999) 777-09-01", http.StatusOK},
		{"other phone", "+79991112233", http.StatusUnauthorized},
		{"too short", "12345", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/auth/login", map[string]any{"phone": tc.phone}, "")
			if w.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d (%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				if got := decode(t, w)["user_id"]; got != devUserID {
					t.Fatalf("user_id = %v", got)
				}
			}
		})
	}
}

func TestGateRejectsUnknownUser(t *testing.T) {
	r := buildTestRouter(newStubChannel())

	if w := doRequest(r, http.MethodGet, "/api/draft", nil, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no header: code = %d, want 401", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/api/draft", nil, "intruder"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong user: code = %d, want 401", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/api/draft", nil, devUserID); w.Code != http.StatusOK {
		t.Fatalf("dev user: code = %d, want 200", w.Code)
	}
}

func TestDraftEstimateFlow(t *testing.T) {
	r := buildTestRouter(newStubChannel())

	w := doRequest(r, http.MethodPut, "/api/draft/origin", map[string]any{
		"address": "Karl Marx St 1", "lat": 58.1387, "lng": 52.6584,
	}, devUserID)
	if w.Code != http.StatusOK {
		t.Fatalf("set origin: %d (%s)", w.Code, w.Body.String())
	}
	if price := decode(t, w)["price"].(float64); price != 0 {
		t.Fatalf("price with one coordinate = %v, want 0", price)
	}

	w = doRequest(r, http.MethodPut, "/api/draft/destination", map[string]any{
		"address": "Lenin St 5", "lat": 58.1300, "lng": 52.6584,
	}, devUserID)
	if w.Code != http.StatusOK {
		t.Fatalf("set destination: %d", w.Code)
	}
	resp := decode(t, w)
	if resp["price"].(float64) <= 0 {
		t.Fatalf("price not derived: %v", resp)
	}
	if resp["from_district"] != "center" {
		t.Fatalf("from_district = %v, want center", resp["from_district"])
	}

	// Switching tariff moves the price.
	economy := resp["price"].(float64)
	w = doRequest(r, http.MethodPut, "/api/draft/tariff", map[string]any{"tariff": "BUSINESS"}, devUserID)
	if w.Code != http.StatusOK {
		t.Fatalf("set tariff: %d", w.Code)
	}
	if business := decode(t, w)["price"].(float64); business <= economy {
		t.Fatalf("business price %v not above economy %v", business, economy)
	}

	if w = doRequest(r, http.MethodPut, "/api/draft/tariff", map[string]any{"tariff": "LUXE"}, devUserID); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown tariff: code = %d, want 400", w.Code)
	}
	if w = doRequest(r, http.MethodPut, "/api/draft/payment", map[string]any{"payment_method": "CARD"}, devUserID); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown payment: code = %d, want 400", w.Code)
	}

	// Half a coordinate is rejected.
	w = doRequest(r, http.MethodPut, "/api/draft/origin", map[string]any{
		"address": "somewhere", "lat": 58.0,
	}, devUserID)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("half coordinate: code = %d, want 400", w.Code)
	}

	// Clearing the origin zeroes the estimate again.
	w = doRequest(r, http.MethodDelete, "/api/draft/origin", nil, devUserID)
	if w.Code != http.StatusOK {
		t.Fatalf("clear origin: %d", w.Code)
	}
	if price := decode(t, w)["price"].(float64); price != 0 {
		t.Fatalf("price after clear = %v, want 0", price)
	}
}

func TestRideSubmitCancelFlow(t *testing.T) {
	ch := newStubChannel()
	r := buildTestRouter(ch)

	// Submitting an empty draft is a client error.
	if w := doRequest(r, http.MethodPost, "/api/ride/submit", nil, devUserID); w.Code != http.StatusBadRequest {
		t.Fatalf("empty draft submit: code = %d, want 400", w.Code)
	}

	doRequest(r, http.MethodPut, "/api/draft/origin", map[string]any{
		"address": "Karl Marx St 1", "lat": 58.1387, "lng": 52.6584,
	}, devUserID)
	doRequest(r, http.MethodPut, "/api/draft/destination", map[string]any{
		"address": "Lenin St 5", "lat": 58.1300, "lng": 52.6584,
	}, devUserID)

	w := doRequest(r, http.MethodPost, "/api/ride/submit", nil, devUserID)
	if w.Code != http.StatusAccepted {
		t.Fatalf("submit: code = %d (%s)", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp["phase"] != "searching" {
		t.Fatalf("phase = %v, want searching", resp["phase"])
	}
	if id, _ := resp["order_id"].(string); id == "" {
		t.Fatal("no order id in response")
	}

	// A second submit while searching conflicts.
	if w = doRequest(r, http.MethodPost, "/api/ride/submit", nil, devUserID); w.Code != http.StatusConflict {
		t.Fatalf("double submit: code = %d, want 409", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/ride/state", nil, devUserID)
	if decode(t, w)["phase"] != "searching" {
		t.Fatalf("state = %s", w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/ride/cancel", nil, devUserID)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: code = %d", w.Code)
	}
	if decode(t, w)["phase"] != "idle" {
		t.Fatalf("phase after cancel = %s", w.Body.String())
	}
	if st := <-ch.patches; st != ride.StatusCancelled {
		t.Fatalf("remote patch = %s, want CANCELLED", st)
	}

	// Cancelling again conflicts, rating without a completed ride conflicts.
	if w = doRequest(r, http.MethodPost, "/api/ride/cancel", nil, devUserID); w.Code != http.StatusConflict {
		t.Fatalf("cancel when idle: code = %d, want 409", w.Code)
	}
	if w = doRequest(r, http.MethodPost, "/api/ride/rating", map[string]any{"rating": 5}, devUserID); w.Code != http.StatusConflict {
		t.Fatalf("rating when idle: code = %d, want 409", w.Code)
	}
}
