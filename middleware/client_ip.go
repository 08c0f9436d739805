package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller's address, honoring the first hop of
// X-Forwarded-For when the service sits behind a proxy.
func getClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.ClientIP()
}
