package gateway

import (
	"context"
	"testing"
	"time"

	"smarttravel/services/backend/backendtest"
	"smarttravel/services/explore"
	"smarttravel/services/geocode"
	"smarttravel/services/onboarding"
	"smarttravel/services/session"

	"go.uber.org/zap"
)

func TestToastQueueDrain(t *testing.T) {
	q := &ToastQueue{}
	q.Success("hola")
	q.Error("fallo", "detalle")

	toasts := q.Drain()
	if len(toasts) != 2 {
		t.Fatalf("toasts = %d, want 2", len(toasts))
	}
	if toasts[0].Level != "success" || toasts[0].Message != "hola" {
		t.Errorf("first toast = %+v", toasts[0])
	}
	if toasts[1].Level != "error" || toasts[1].Description != "detalle" {
		t.Errorf("second toast = %+v", toasts[1])
	}

	if again := q.Drain(); len(again) != 0 {
		t.Errorf("second drain = %+v, want empty", again)
	}
}

func testFactory(logger *zap.Logger) Factory {
	return func(ctx context.Context, id string) *Session {
		b := &backendtest.Client{}
		auth := session.NewStore(b, session.NewMemoryStore(), logger)
		toasts := &ToastQueue{}
		ctrl := explore.NewController(b, auth, toasts, logger, 5, "es")
		mapState := NewMapState()
		return &Session{
			ID:           id,
			Auth:         auth,
			Wizard:       onboarding.NewWizard(b, auth, logger),
			Explore:      ctrl,
			Map:          mapState,
			MapView:      explore.NewMapView(mapState, ctrl),
			Autocomplete: geocode.NewAutocomplete(geocode.Config{}, nil, logger),
			Toasts:       toasts,
		}
	}
}

func TestManagerGet(t *testing.T) {
	logger := zap.NewNop()
	m := NewManager(testFactory(logger), time.Hour, logger)

	a := m.Get("s1")
	if a == nil || a.ID != "s1" {
		t.Fatalf("Get() = %+v", a)
	}
	if a.Auth.Loading() {
		t.Error("session not hydrated on creation")
	}

	if again := m.Get("s1"); again != a {
		t.Error("Get() rebuilt an existing session")
	}
	if other := m.Get("s2"); other == a {
		t.Error("distinct ids share a session")
	}
}

func TestSuggestionTracking(t *testing.T) {
	logger := zap.NewNop()
	m := NewManager(testFactory(logger), time.Hour, logger)
	s := m.Get("s1")

	base := s.SuggestionSeq()
	// Clear always notifies the subscriber, even from an empty state.
	s.Autocomplete.Clear()
	if got := s.SuggestionSeq(); got != base+1 {
		t.Errorf("SuggestionSeq() = %d, want %d after a state change", got, base+1)
	}
}

func TestManagerSweep(t *testing.T) {
	logger := zap.NewNop()
	m := NewManager(testFactory(logger), time.Minute, logger)

	stale := m.Get("stale")
	fresh := m.Get("fresh")

	// Age only the stale one past the TTL.
	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	m.sweep(time.Now())

	if again := m.Get("fresh"); again != fresh {
		t.Error("fresh session evicted")
	}
	if again := m.Get("stale"); again == stale {
		t.Error("stale session survived the sweep")
	}
}

func TestMapStateRecordsCommands(t *testing.T) {
	m := NewMapState()

	markers := []explore.Marker{{Index: 0, Label: "1", Name: "Museo", Lat: 40.41, Lon: -3.69, Active: true}}
	m.SetMarkers(markers)
	m.FitBounds(markers)

	snap := m.Snapshot()
	if len(snap.Markers) != 1 || snap.FitSeq != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.FlyTo != nil {
		t.Error("flyTo set before any selection")
	}

	m.FlyTo(40.41, -3.69)
	m.FlyTo(40.41, -3.69)
	snap = m.Snapshot()
	if snap.FlyTo == nil || snap.FlyTo.Seq != 2 {
		t.Errorf("flyTo = %+v, want seq bumped on every command", snap.FlyTo)
	}
}
