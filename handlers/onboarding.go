// File: smarttravel/handlers/onboarding.go
package handlers

import (
	"net/http"

	"smarttravel/services/backend"
	"smarttravel/services/gateway"
	"smarttravel/services/onboarding"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func onboardingState(gw *gateway.Session) gin.H {
	step := gw.Wizard.Step()
	return gin.H{
		"step":       int(step),
		"title":      step.Title(),
		"draft":      gw.Wizard.Draft(),
		"canAdvance": gw.Wizard.CanAdvance(),
		"valid": gin.H{
			"personalInfo": gw.Wizard.PersonalInfoValid(),
			"preferencias": gw.Wizard.PreferencesValid(),
		},
	}
}

// OnboardingStateHandler reports the wizard position and draft.
func OnboardingStateHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	c.JSON(http.StatusOK, onboardingState(gw))
}

// OnboardingNextHandler advances one step. The gateway re-checks the
// step's gating predicate even though the UI disables the button.
func OnboardingNextHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	if !gw.Wizard.CanAdvance() {
		c.JSON(http.StatusConflict, gin.H{"error": "Completa este paso antes de continuar"})
		return
	}
	gw.Wizard.Next()
	c.JSON(http.StatusOK, onboardingState(gw))
}

// OnboardingBackHandler retreats one step, keeping entered data.
func OnboardingBackHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	gw.Wizard.Back()
	c.JSON(http.StatusOK, onboardingState(gw))
}

// OnboardingFieldHandler writes one draft field.
func OnboardingFieldHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}
	if err := gw.Wizard.SetField(req.Field, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, onboardingState(gw))
}

// OnboardingToggleHandler flips one preference tag.
func OnboardingToggleHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	var req struct {
		Tag string `json:"tag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}
	gw.Wizard.TogglePreference(req.Tag)
	c.JSON(http.StatusOK, onboardingState(gw))
}

// OnboardingCompleteHandler flushes the draft to the backend.
func OnboardingCompleteHandler(c *gin.Context) {
	logger := getLogger(c)
	gw := currentSession(c)
	if gw == nil {
		return
	}
	if err := gw.Wizard.Complete(c.Request.Context()); err != nil {
		logger.Warn("onboarding completion failed", zap.Error(err))
		gw.Toasts.Error("Error al guardar preferencias", "Por favor, intenta de nuevo.")
		status := backend.StatusOf(err)
		if status == 0 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	gw.Toasts.Success("¡Perfil configurado correctamente!")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PreferenceCatalogHandler serves the selectable tags, remote-first
// with the static fallback.
func PreferenceCatalogHandler(b backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		catalog := onboarding.LoadCatalog(c.Request.Context(), b, logger)
		c.JSON(http.StatusOK, gin.H{"preferencias": catalog})
	}
}
