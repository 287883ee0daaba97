// File: smarttravel/handlers/user.go
package handlers

import (
	"net/http"

	"smarttravel/models"
	"smarttravel/services/backend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateProfileHandler forwards a partial profile update to the backend
// and refreshes the cached session user on success.
func UpdateProfileHandler(b backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		gw := currentSession(c)
		if gw == nil {
			return
		}
		user := gw.Auth.User()
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}

		var fields models.UserUpdate
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
			return
		}

		updated, err := b.UpdateUser(c.Request.Context(), gw.Auth.Token(), user.ID, fields)
		if err != nil {
			logger.Warn("profile update failed", zap.String("userID", user.ID), zap.Error(err))
			gw.Toasts.Error("Error al actualizar", "No se pudo actualizar el perfil. Intenta de nuevo.")
			status := backend.StatusOf(err)
			if status == 0 {
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		gw.Auth.SetUser(c.Request.Context(), updated)
		gw.Toasts.Success("Perfil actualizado")
		c.JSON(http.StatusOK, gin.H{"usuario": updated})
	}
}
