// File: smarttravel/handlers/bundle.go
package handlers

import (
	"net/http"

	"smarttravel/services/gateway"

	"github.com/gin-gonic/gin"
)

// gatewaySessionKey is where the session middleware stores the current
// gateway session.
const gatewaySessionKey = "gatewaySession"

// HandlerBundle groups every endpoint handler the router mounts.
type HandlerBundle struct {
	// Session endpoints.
	LoginHandler    gin.HandlerFunc
	RegisterHandler gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc
	MeHandler       gin.HandlerFunc
	ToastsHandler   gin.HandlerFunc

	// Profile endpoints.
	UpdateProfileHandler gin.HandlerFunc

	// Onboarding endpoints.
	OnboardingStateHandler    gin.HandlerFunc
	OnboardingNextHandler     gin.HandlerFunc
	OnboardingBackHandler     gin.HandlerFunc
	OnboardingFieldHandler    gin.HandlerFunc
	OnboardingToggleHandler   gin.HandlerFunc
	OnboardingCompleteHandler gin.HandlerFunc
	PreferenceCatalogHandler  gin.HandlerFunc

	// Explore endpoints.
	ExploreSearchHandler       gin.HandlerFunc
	ExploreRetryHandler        gin.HandlerFunc
	ExploreSelectHandler       gin.HandlerFunc
	ExploreStateHandler        gin.HandlerFunc
	AutocompleteInputHandler   gin.HandlerFunc
	AutocompleteClearHandler   gin.HandlerFunc
	AutocompleteResultsHandler gin.HandlerFunc
}

// currentSession pulls the gateway session attached by the middleware.
// Missing means the middleware chain is miswired; answer 500.
func currentSession(c *gin.Context) *gateway.Session {
	v, exists := c.Get(gatewaySessionKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "no gateway session"})
		return nil
	}
	s, ok := v.(*gateway.Session)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "no gateway session"})
		return nil
	}
	return s
}
