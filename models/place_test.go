package models

import "testing"

func TestPrimaryCategory(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"arte, cultura, historia", "arte"},
		{"gastronomía", "gastronomía"},
		{" naturaleza , parque", "naturaleza"},
		{"", ""},
	}
	for _, tt := range tests {
		p := Place{Category: tt.category}
		if got := p.PrimaryCategory(); got != tt.want {
			t.Errorf("PrimaryCategory(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestRecommendationQueryModes(t *testing.T) {
	city := CityQuery("Madrid", 5, "es")
	if city.ByCoordinates() {
		t.Error("city query reports coordinate mode")
	}
	if city.City != "Madrid" || city.RadiusKm != 5 || city.Language != "es" {
		t.Errorf("city query = %+v", city)
	}

	coord := CoordinateQuery("Madrid", Coordinates{Latitude: 40.4, Longitude: -3.7}, 5, "es")
	if !coord.ByCoordinates() {
		t.Error("coordinate query reports city mode")
	}
	if coord.City != "Madrid" {
		t.Error("coordinate query dropped the display label")
	}
}
