// File: smarttravel/middleware/session.go
package middleware

import (
	"net/http"

	"smarttravel/services/gateway"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie     = "stc_session"
	sessionCookieAge  = 30 * 24 * 3600 // seconds
	gatewaySessionKey = "gatewaySession"
)

// GatewaySessionMiddleware attaches the per-browser gateway session,
// minting a cookie for first-time visitors.
func GatewaySessionMiddleware(mgr *gateway.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, sessionCookieAge, "/", "", false, true)
		}
		s := mgr.Get(id)
		c.Set(gatewaySessionKey, s)
		c.Next()
	}
}

// AuthGuardMiddleware rejects requests whose gateway session has no
// signed-in user, the way guarded pages redirect in the web client.
func AuthGuardMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(gatewaySessionKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}
		s, ok := v.(*gateway.Session)
		if !ok || !s.Auth.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}
		c.Next()
	}
}
