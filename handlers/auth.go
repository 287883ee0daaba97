// File: smarttravel/handlers/auth.go
package handlers

import (
	"net/http"
	"strings"

	"smarttravel/models"
	"smarttravel/services/backend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// minPasswordLen is enforced client-side before any network call.
const minPasswordLen = 6

// LoginHandler signs the gateway session in against the backend.
func LoginHandler(c *gin.Context) {
	logger := getLogger(c)
	gw := currentSession(c)
	if gw == nil {
		return
	}

	var creds models.LoginCredentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email y contraseña son obligatorios"})
		return
	}

	user, err := gw.Auth.SignIn(c.Request.Context(), creds)
	if err != nil {
		logger.Info("login rejected", zap.String("email", creds.Email), zap.Error(err))
		status, message := loginError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	gw.Toasts.Success("¡Bienvenido de vuelta!")
	c.JSON(http.StatusOK, gin.H{"usuario": user})
}

func loginError(err error) (int, string) {
	switch backend.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusBadRequest:
		return http.StatusUnauthorized, "Credenciales incorrectas"
	case http.StatusNotFound:
		return http.StatusNotFound, "Usuario no encontrado"
	case 0:
		return http.StatusBadGateway, backend.ErrConexion
	}
	return http.StatusBadGateway, err.Error()
}

// RegisterHandler creates the account. Confirmation mismatch and short
// passwords are rejected before any network call.
func RegisterHandler(c *gin.Context) {
	logger := getLogger(c)
	gw := currentSession(c)
	if gw == nil {
		return
	}

	var data models.RegisterData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}
	if data.Password != data.PasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Las contraseñas no coinciden"})
		return
	}
	if len(data.Password) < minPasswordLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contraseña inválida", "details": "Debe tener al menos 6 caracteres"})
		return
	}

	user, err := gw.Auth.Register(c.Request.Context(), data)
	if err != nil {
		logger.Info("registration rejected", zap.String("email", data.Email), zap.Error(err))
		status, message := registerError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	gw.Toasts.Success("¡Cuenta creada exitosamente!")
	c.JSON(http.StatusCreated, gin.H{"usuario": user})
}

func registerError(err error) (int, string) {
	if backend.IsDuplicateEmail(err) {
		return http.StatusConflict, "Email ya registrado"
	}
	switch backend.StatusOf(err) {
	case http.StatusBadRequest:
		return http.StatusBadRequest, "Datos inválidos"
	case 0:
		return http.StatusBadGateway, backend.ErrConexion
	}
	return http.StatusBadGateway, err.Error()
}

// LogoutHandler clears the session; navigation is the client's job.
func LogoutHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	gw.Auth.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MeHandler reports the current session user for guarded pages and the
// header.
func MeHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"usuario":         gw.Auth.User(),
		"isAuthenticated": gw.Auth.IsAuthenticated(),
		"isLoading":       gw.Auth.Loading(),
	})
}

// ToastsHandler drains the pending notices.
func ToastsHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"toasts": gw.Toasts.Drain()})
}
