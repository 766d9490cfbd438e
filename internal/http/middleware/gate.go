// README: Access gate; single-user client API keyed by X-User-ID.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDHeader = "X-User-ID"

// callerKey is the gin context key the gate stores the verified caller under.
const callerKey = "caller_id"

// Gate admits only the configured user. There is no token exchange; the dev
// login flow hands the client its fixed user id and every call echoes it back.
func Gate(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(userIDHeader)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + userIDHeader})
			return
		}
		if got != userID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		c.Set(callerKey, got)
		c.Next()
	}
}

// CallerID returns the user id the gate verified for this request.
func CallerID(c *gin.Context) string {
	return c.GetString(callerKey)
}
