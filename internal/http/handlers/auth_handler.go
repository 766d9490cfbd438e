// README: Dev login; one hardcoded phone number maps to one user id.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/config"
)

type AuthHandler struct {
	cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginReq struct {
	Phone string `json:"phone"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	phone, ok := normalizePhone(req.Phone)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid phone number")
		return
	}
	want, _ := normalizePhone(h.cfg.DevPhone)
	if phone != want {
		writeError(c, http.StatusUnauthorized, "unknown phone number")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user_id": h.cfg.DevUserID, "phone": phone})
}

// normalizePhone reduces any input to +7 followed by the last ten digits,
// so "8 999 777-09-01" and "+79997770901" compare equal.
func normalizePhone(raw string) (string, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 10 {
		return "", false
	}
	return "+7" + d[len(d)-10:], true
}
