// File: smarttravel/models/suggestion.go
package models

import "strings"

// Suggestion is one Nominatim autocomplete hit. Lat and Lon are kept as
// strings so the source precision survives until a search needs numbers.
type Suggestion struct {
	PlaceID     int64             `json:"place_id"`
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Type        string            `json:"type,omitempty"`
	Address     SuggestionAddress `json:"address"`
}

// SuggestionAddress is the decomposed address of a suggestion.
type SuggestionAddress struct {
	City        string `json:"city,omitempty"`
	Town        string `json:"town,omitempty"`
	Village     string `json:"village,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// CityName picks the short label for a suggestion: city over town over
// village, falling back to the first display-name segment.
func (s Suggestion) CityName() string {
	switch {
	case s.Address.City != "":
		return s.Address.City
	case s.Address.Town != "":
		return s.Address.Town
	case s.Address.Village != "":
		return s.Address.Village
	}
	parts := strings.SplitN(s.DisplayName, ",", 2)
	return strings.TrimSpace(parts[0])
}

// SplitDisplayName returns the first display-name segment and a
// secondary line built from the next two segments.
func (s Suggestion) SplitDisplayName() (main, secondary string) {
	parts := strings.Split(s.DisplayName, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	main = parts[0]
	if len(parts) > 1 {
		end := min(len(parts), 3)
		secondary = strings.Join(parts[1:end], ", ")
	}
	return main, secondary
}
