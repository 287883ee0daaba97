// File: smarttravel/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"smarttravel/handlers"
	"smarttravel/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers authentication and session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/register", hb.RegisterHandler)
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.MeHandler)
		api.GET("/toasts", hb.ToastsHandler)
	}
}

// RegisterProfileRoutes registers the profile editor endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.AuthGuardMiddleware())
		api.PUT("", hb.UpdateProfileHandler)
	}
}

// RegisterOnboardingRoutes registers the wizard endpoints. The catalog
// stays public: the fallback list makes it harmless.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/preferencias", hb.PreferenceCatalogHandler)

	api := r.Group("/api/onboarding")
	{
		api.Use(middleware.AuthGuardMiddleware())
		api.GET("/state", hb.OnboardingStateHandler)
		api.POST("/next", hb.OnboardingNextHandler)
		api.POST("/back", hb.OnboardingBackHandler)
		api.POST("/field", hb.OnboardingFieldHandler)
		api.POST("/toggle", hb.OnboardingToggleHandler)
		api.POST("/complete", hb.OnboardingCompleteHandler)
	}
}

// RegisterExploreRoutes registers search, selection and autocomplete.
func RegisterExploreRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/explore")
	{
		api.Use(middleware.AuthGuardMiddleware())
		api.POST("/search", hb.ExploreSearchHandler)
		api.POST("/retry", hb.ExploreRetryHandler)
		api.POST("/select", hb.ExploreSelectHandler)
		api.GET("/state", hb.ExploreStateHandler)
		api.POST("/autocomplete", hb.AutocompleteInputHandler)
		api.DELETE("/autocomplete", hb.AutocompleteClearHandler)
		api.GET("/autocomplete", hb.AutocompleteResultsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Smart Travel Companion"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterOnboardingRoutes(r, hb)
	RegisterExploreRoutes(r, hb)
	RegisterHealthRoute(r)
}
