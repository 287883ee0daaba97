// File: smarttravel/services/onboarding/catalog.go
package onboarding

import (
	"context"

	"smarttravel/services/backend"

	"go.uber.org/zap"
)

// FallbackPreferences is served whenever the backend catalog is
// unreachable or empty, so the preference step never renders without
// options.
var FallbackPreferences = []string{
	"playa",
	"montaña",
	"cultura",
	"gastronomía",
	"aventura",
	"naturaleza",
	"historia",
	"arte",
	"fotografía",
	"deportes",
	"vida nocturna",
	"compras",
	"relax",
	"ecoturismo",
	"arquitectura",
	"música",
	"festivales",
	"senderismo",
}

// LoadCatalog fetches the selectable preference tags once per step
// mount. Remote-first, static-fallback: on any failure or an empty
// result the fixed list is substituted. No retry; the failure is logged
// and never shown to the user.
func LoadCatalog(ctx context.Context, b backend.Client, logger *zap.Logger) []string {
	catalog, err := b.PreferenceCatalog(ctx)
	if err != nil {
		logger.Warn("preference catalog unavailable, using fallback", zap.Error(err))
		return FallbackPreferences
	}
	if len(catalog) == 0 {
		logger.Warn("preference catalog empty, using fallback")
		return FallbackPreferences
	}
	return catalog
}
