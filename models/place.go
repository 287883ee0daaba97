// File: smarttravel/models/place.go
package models

import "strings"

// Place is one recommendation returned by the backend. Immutable once
// received; a new search replaces the whole result set.
type Place struct {
	Name             string   `json:"name"`
	Category         string   `json:"category"` // comma-joined tags
	DistanceKm       float64  `json:"distance_km"`
	Description      string   `json:"description"`
	ShortReason      string   `json:"short_reason,omitempty"`
	Address          string   `json:"address,omitempty"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	ImageURL         string   `json:"image_url,omitempty"`
	Images           []string `json:"images,omitempty"`
	OpeningHours     string   `json:"opening_hours,omitempty"`
	EstimatedTimeMin int      `json:"estimated_time_min,omitempty"`
}

// PrimaryCategory returns the first tag of the comma-joined category.
func (p Place) PrimaryCategory() string {
	if i := strings.Index(p.Category, ","); i >= 0 {
		return strings.TrimSpace(p.Category[:i])
	}
	return strings.TrimSpace(p.Category)
}

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RecommendationQuery selects between the two search modes. Build it
// through CityQuery or CoordinateQuery; when coordinates are present
// they take precedence and City is kept only as the display label.
type RecommendationQuery struct {
	City        string
	Coordinates *Coordinates
	RadiusKm    float64
	Language    string
}

// CityQuery builds a search-by-city-name query.
func CityQuery(city string, radiusKm float64, language string) RecommendationQuery {
	return RecommendationQuery{City: city, RadiusKm: radiusKm, Language: language}
}

// CoordinateQuery builds a search-by-coordinates query. The city is the
// human-readable label shown alongside the results.
func CoordinateQuery(city string, coords Coordinates, radiusKm float64, language string) RecommendationQuery {
	return RecommendationQuery{City: city, Coordinates: &coords, RadiusKm: radiusKm, Language: language}
}

// ByCoordinates reports whether the coordinate mode applies.
func (q RecommendationQuery) ByCoordinates() bool {
	return q.Coordinates != nil
}
