// File: smarttravel/models/onboarding.go
package models

// OnboardingDraft holds the wizard's in-progress answers. It lives only
// for the duration of one onboarding flow and is flushed to the backend
// on completion.
type OnboardingDraft struct {
	Pais         string   `json:"pais"`
	Ciudad       string   `json:"ciudad"`
	Telefono     string   `json:"telefono,omitempty"`
	Preferencias []string `json:"preferencias"`
}

// HasPreference reports whether the tag is currently selected.
func (d OnboardingDraft) HasPreference(tag string) bool {
	for _, p := range d.Preferencias {
		if p == tag {
			return true
		}
	}
	return false
}
