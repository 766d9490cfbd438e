// README: Access gate tests.
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/http/middleware"
)

func newTestRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Gate(userID))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"caller": middleware.CallerID(c)})
	})
	return r
}

func doGet(r *gin.Engine, userHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if userHeader != "" {
		req.Header.Set("X-User-ID", userHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGate_MissingHeader(t *testing.T) {
	r := newTestRouter("u1")
	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestGate_WrongUser(t *testing.T) {
	r := newTestRouter("u1")
	if w := doGet(r, "u2"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestGate_AdmitsConfiguredUser(t *testing.T) {
	r := newTestRouter("u1")
	w := doGet(r, "u1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if want := `"caller":"u1"`; !strings.Contains(w.Body.String(), want) {
		t.Errorf("body %q does not carry the caller id", w.Body.String())
	}
}
