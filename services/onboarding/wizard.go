// File: smarttravel/services/onboarding/wizard.go
package onboarding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"smarttravel/services/backend"
	"smarttravel/models"
	"smarttravel/services/session"

	"go.uber.org/zap"
)

// Step identifies one screen of the onboarding flow.
type Step int

const (
	StepBienvenida Step = iota
	StepDatos
	StepPreferencias
	StepResumen

	stepCount
)

var stepTitles = [stepCount]string{"Bienvenida", "Datos", "Preferencias", "Resumen"}

func (s Step) Title() string {
	if s < 0 || s >= stepCount {
		return ""
	}
	return stepTitles[s]
}

// Wizard drives the fixed linear onboarding flow and owns the draft
// answers. Advancement gating is the caller's job via the validity
// predicates; Next itself only refuses to walk off either end.
type Wizard struct {
	Backend backend.Client
	Session *session.Store
	Logger  *zap.Logger

	mu    sync.Mutex
	step  Step
	draft models.OnboardingDraft
}

func NewWizard(b backend.Client, s *session.Store, logger *zap.Logger) *Wizard {
	return &Wizard{Backend: b, Session: s, Logger: logger}
}

// Step returns the current step index.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Next advances by exactly one step; at the last step it is a no-op.
func (w *Wizard) Next() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step < stepCount-1 {
		w.step++
	}
	return w.step
}

// Back retreats by exactly one step; at the first step it is a no-op.
// Already-entered data is never cleared.
func (w *Wizard) Back() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > 0 {
		w.step--
	}
	return w.step
}

// Draft returns a copy of the in-progress answers.
func (w *Wizard) Draft() models.OnboardingDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.draft
	d.Preferencias = append([]string(nil), w.draft.Preferencias...)
	return d
}

// SetField writes one text field of the draft.
func (w *Wizard) SetField(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch field {
	case "pais":
		w.draft.Pais = value
	case "ciudad":
		w.draft.Ciudad = value
	case "telefono":
		w.draft.Telefono = value
	default:
		return fmt.Errorf("unknown onboarding field %q", field)
	}
	return nil
}

// TogglePreference flips one tag in the preference set: present tags
// are removed, absent tags appended. Toggling twice restores the set.
func (w *Wizard) TogglePreference(tag string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, p := range w.draft.Preferencias {
		if p == tag {
			w.draft.Preferencias = append(
				w.draft.Preferencias[:i], w.draft.Preferencias[i+1:]...)
			return
		}
	}
	w.draft.Preferencias = append(w.draft.Preferencias, tag)
}

// PersonalInfoValid reports whether the Datos step may advance: both
// country and city non-empty after trimming.
func (w *Wizard) PersonalInfoValid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.TrimSpace(w.draft.Pais) != "" && strings.TrimSpace(w.draft.Ciudad) != ""
}

// PreferencesValid reports whether the Preferencias step may advance:
// at least one tag selected.
func (w *Wizard) PreferencesValid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.draft.Preferencias) > 0
}

// CanAdvance evaluates the current step's gating predicate.
func (w *Wizard) CanAdvance() bool {
	switch w.Step() {
	case StepDatos:
		return w.PersonalInfoValid()
	case StepPreferencias:
		return w.PreferencesValid()
	case StepResumen:
		return false
	default:
		return true
	}
}

// Complete flushes the draft to the backend: profile fields first, then
// the preference set, then a refresh of the cached session user, in
// that order. The first failure surfaces as the single error; writes
// already committed remotely are not rolled back, the backend owns
// transactionality. On success the caller navigates away and the draft
// need not survive.
func (w *Wizard) Complete(ctx context.Context) error {
	user := w.Session.User()
	if user == nil {
		return &backend.APIError{Message: "No autorizado", StatusCode: 401}
	}
	token := w.Session.Token()
	draft := w.Draft()

	fields := models.UserUpdate{
		Pais:   &draft.Pais,
		Ciudad: &draft.Ciudad,
	}
	if draft.Telefono != "" {
		fields.Telefono = &draft.Telefono
	}
	if _, err := w.Backend.UpdateUser(ctx, token, user.ID, fields); err != nil {
		w.Logger.Warn("onboarding profile update failed", zap.Error(err))
		return err
	}

	if err := w.Backend.UpdatePreferences(ctx, token, user.ID, draft.Preferencias); err != nil {
		w.Logger.Warn("onboarding preferences update failed", zap.Error(err))
		return err
	}

	if err := w.Session.Revalidate(ctx); err != nil {
		w.Logger.Warn("session refresh after onboarding failed", zap.Error(err))
		return err
	}
	return nil
}
