package onboarding

import (
	"context"
	"reflect"
	"testing"

	"smarttravel/services/backend"
	"smarttravel/services/backend/backendtest"

	"go.uber.org/zap"
)

func TestLoadCatalog(t *testing.T) {
	remote := []string{"playa", "nieve", "desierto"}

	tests := []struct {
		name    string
		catalog []string
		err     error
		want    []string
	}{
		{"remote catalog", remote, nil, remote},
		{"backend failure", nil, &backend.APIError{Message: "boom", StatusCode: 500}, FallbackPreferences},
		{"empty catalog", []string{}, nil, FallbackPreferences},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &backendtest.Client{
				PreferenceCatalogFunc: func(ctx context.Context) ([]string, error) {
					return tt.catalog, tt.err
				},
			}
			got := LoadCatalog(context.Background(), fake, zap.NewNop())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadCatalog() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFallbackPreferencesNonEmpty(t *testing.T) {
	if len(FallbackPreferences) == 0 {
		t.Fatal("fallback list is empty")
	}
	seen := make(map[string]bool, len(FallbackPreferences))
	for _, tag := range FallbackPreferences {
		if seen[tag] {
			t.Errorf("duplicate fallback tag %q", tag)
		}
		seen[tag] = true
	}
}
