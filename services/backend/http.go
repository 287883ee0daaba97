// File: smarttravel/services/backend/http.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"smarttravel/models"

	"go.uber.org/zap"
)

// HTTPClient is the production Client implementation.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// NewHTTPClient builds a backend client against the given base URL.
func NewHTTPClient(baseURL string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

// errorBody is the backend's error envelope. Some endpoints answer with
// "mensaje", others with "message".
type errorBody struct {
	Mensaje string `json:"mensaje"`
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// Pass cancellation through untouched so aborted calls are
		// discriminated from real connectivity failures.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Logger.Warn("backend unreachable", zap.String("path", path), zap.Error(err))
		return &APIError{Message: ErrConexion}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: ErrConexion, StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Mensaje
		if msg == "" {
			msg = eb.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("Error del servidor (%d)", resp.StatusCode)
		}
		return &APIError{Message: msg, StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Message: ErrConexion, StatusCode: resp.StatusCode}
		}
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/registrar", "", data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/perfil", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, token, userID string, fields models.UserUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+userID, token, fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdatePreferences(ctx context.Context, token, userID string, preferences []string) error {
	body := map[string][]string{"preferences": preferences}
	return c.do(ctx, http.MethodPut, "/api/users/"+userID+"/preferencias", token, body, nil)
}

func (c *HTTPClient) PreferenceCatalog(ctx context.Context) ([]string, error) {
	var catalog []string
	if err := c.do(ctx, http.MethodGet, "/api/preferencias", "", nil, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c *HTTPClient) Recommendations(ctx context.Context, token string, query models.RecommendationQuery) ([]models.Place, error) {
	body := map[string]any{
		"radiusKm": query.RadiusKm,
		"language": query.Language,
	}
	// Coordinate mode wins when the query carries both.
	if query.ByCoordinates() {
		body["coordinates"] = query.Coordinates
	} else {
		body["city"] = query.City
	}

	var res struct {
		Places []models.Place `json:"places"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/recomendaciones", token, body, &res); err != nil {
		return nil, err
	}
	return res.Places, nil
}
