// Package backendtest provides a configurable fake backend client for
// tests. Unset funcs answer with a generic failure so a test never
// silently exercises an endpoint it did not stub.
package backendtest

import (
	"context"

	"smarttravel/models"
	"smarttravel/services/backend"
)

// Client implements backend.Client with per-endpoint func fields.
type Client struct {
	LoginFunc             func(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error)
	RegisterFunc          func(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)
	ProfileFunc           func(ctx context.Context, token string) (*models.User, error)
	UpdateUserFunc        func(ctx context.Context, token, userID string, fields models.UserUpdate) (*models.User, error)
	UpdatePreferencesFunc func(ctx context.Context, token, userID string, preferences []string) error
	PreferenceCatalogFunc func(ctx context.Context) ([]string, error)
	RecommendationsFunc   func(ctx context.Context, token string, query models.RecommendationQuery) ([]models.Place, error)
}

var errUnstubbed = &backend.APIError{Message: "backendtest: endpoint not stubbed", StatusCode: 500}

func (c *Client) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	if c.LoginFunc == nil {
		return nil, errUnstubbed
	}
	return c.LoginFunc(ctx, creds)
}

func (c *Client) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	if c.RegisterFunc == nil {
		return nil, errUnstubbed
	}
	return c.RegisterFunc(ctx, data)
}

func (c *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	if c.ProfileFunc == nil {
		return nil, errUnstubbed
	}
	return c.ProfileFunc(ctx, token)
}

func (c *Client) UpdateUser(ctx context.Context, token, userID string, fields models.UserUpdate) (*models.User, error) {
	if c.UpdateUserFunc == nil {
		return nil, errUnstubbed
	}
	return c.UpdateUserFunc(ctx, token, userID, fields)
}

func (c *Client) UpdatePreferences(ctx context.Context, token, userID string, preferences []string) error {
	if c.UpdatePreferencesFunc == nil {
		return errUnstubbed
	}
	return c.UpdatePreferencesFunc(ctx, token, userID, preferences)
}

func (c *Client) PreferenceCatalog(ctx context.Context) ([]string, error) {
	if c.PreferenceCatalogFunc == nil {
		return nil, errUnstubbed
	}
	return c.PreferenceCatalogFunc(ctx)
}

func (c *Client) Recommendations(ctx context.Context, token string, query models.RecommendationQuery) ([]models.Place, error) {
	if c.RecommendationsFunc == nil {
		return nil, errUnstubbed
	}
	return c.RecommendationsFunc(ctx, token, query)
}
