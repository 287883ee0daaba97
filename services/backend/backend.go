// File: smarttravel/services/backend/backend.go
package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"smarttravel/models"
)

// ErrConexion is the generic message for failures where the backend
// never produced a response.
const ErrConexion = "Error de conexión. Intenta de nuevo."

// Client is the contract with the external recommendation backend. All
// persistence and business rules live on the other side of it; this
// module only orchestrates calls.
type Client interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error)
	Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)
	Profile(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, token, userID string, fields models.UserUpdate) (*models.User, error)
	UpdatePreferences(ctx context.Context, token, userID string, preferences []string) error
	PreferenceCatalog(ctx context.Context) ([]string, error)
	Recommendations(ctx context.Context, token string, query models.RecommendationQuery) ([]models.Place, error)
}

// APIError is the single normalized failure type for backend calls. The
// status code is zero when the backend never answered.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 from the backend. A 401
// on profile revalidation is a session-expiry signal, not a generic
// error, so callers branch on it.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsDuplicateEmail recognizes the backend's duplicate-registration
// answer: a 409, or a message mentioning that the account exists.
func IsDuplicateEmail(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusConflict {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "existe")
}
