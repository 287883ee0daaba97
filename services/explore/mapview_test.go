package explore

import (
	"context"
	"testing"

	"smarttravel/models"
	"smarttravel/services/backend"
	"smarttravel/services/backend/backendtest"
)

// fakeRenderer counts render commands and remembers the last of each.
type fakeRenderer struct {
	setCalls  int
	fitCalls  int
	flyCalls  int
	lastSet   []Marker
	lastFlyTo [2]float64
}

func (r *fakeRenderer) SetMarkers(markers []Marker) {
	r.setCalls++
	r.lastSet = markers
}

func (r *fakeRenderer) FitBounds(markers []Marker) {
	r.fitCalls++
}

func (r *fakeRenderer) FlyTo(lat, lon float64) {
	r.flyCalls++
	r.lastFlyTo = [2]float64{lat, lon}
}

func newSyncedView(t *testing.T) (*MapView, *fakeRenderer, *Controller) {
	t.Helper()
	fake := &backendtest.Client{
		RecommendationsFunc: func(ctx context.Context, token string, query models.RecommendationQuery) ([]models.Place, error) {
			return testPlaces, nil
		},
	}
	c := newTestController(fake, nil)
	r := &fakeRenderer{}
	v := NewMapView(r, c)
	c.SearchCity(context.Background(), "Madrid")
	v.Sync()
	return v, r, c
}

func TestSyncBeforeResults(t *testing.T) {
	c := newTestController(&backendtest.Client{}, nil)
	r := &fakeRenderer{}
	v := NewMapView(r, c)

	v.Sync()
	if r.setCalls != 0 || r.fitCalls != 0 || r.flyCalls != 0 {
		t.Errorf("Sync on idle state rendered: set=%d fit=%d fly=%d",
			r.setCalls, r.fitCalls, r.flyCalls)
	}
}

func TestSyncRendersResults(t *testing.T) {
	_, r, _ := newSyncedView(t)

	if r.setCalls != 1 {
		t.Fatalf("SetMarkers calls = %d, want 1", r.setCalls)
	}
	if r.fitCalls != 1 {
		t.Errorf("FitBounds calls = %d, want 1 on first result set", r.fitCalls)
	}
	if len(r.lastSet) != len(testPlaces) {
		t.Fatalf("markers = %d, want %d", len(r.lastSet), len(testPlaces))
	}
	if r.lastSet[0].Label != "1" || r.lastSet[2].Label != "3" {
		t.Errorf("marker labels not 1-based: %q, %q", r.lastSet[0].Label, r.lastSet[2].Label)
	}
	if !r.lastSet[0].Active {
		t.Error("first marker not active after a fresh search")
	}
}

func TestSyncFitsOnlyOnNewResultSet(t *testing.T) {
	v, r, c := newSyncedView(t)

	// A plain re-sync keeps the viewport where the user left it.
	v.Sync()
	if r.fitCalls != 1 {
		t.Errorf("FitBounds calls after re-sync = %d, want 1", r.fitCalls)
	}

	// A new search moves it again.
	c.SearchCity(context.Background(), "Lima")
	v.Sync()
	if r.fitCalls != 2 {
		t.Errorf("FitBounds calls after second search = %d, want 2", r.fitCalls)
	}
}

func TestMarkerClickFliesToPlace(t *testing.T) {
	v, r, _ := newSyncedView(t)

	v.HandleMarkerClick(1)
	if r.flyCalls != 1 {
		t.Fatalf("FlyTo calls = %d, want 1", r.flyCalls)
	}
	want := [2]float64{testPlaces[1].Latitude, testPlaces[1].Longitude}
	if r.lastFlyTo != want {
		t.Errorf("FlyTo = %v, want %v", r.lastFlyTo, want)
	}
	if !r.lastSet[1].Active || r.lastSet[0].Active {
		t.Error("active marker not moved to the clicked index")
	}

	// Clicking the already-active marker animates again.
	v.HandleMarkerClick(1)
	if r.flyCalls != 2 {
		t.Errorf("FlyTo calls after re-click = %d, want 2", r.flyCalls)
	}
}

func TestSyncClearsMarkersOnEmptyResult(t *testing.T) {
	fake := &backendtest.Client{
		RecommendationsFunc: func(ctx context.Context, token string, query models.RecommendationQuery) ([]models.Place, error) {
			if query.City == "Madrid" {
				return testPlaces, nil
			}
			return nil, nil
		},
	}
	c := newTestController(fake, nil)
	r := &fakeRenderer{}
	v := NewMapView(r, c)

	c.SearchCity(context.Background(), "Madrid")
	v.Sync()
	if len(r.lastSet) != len(testPlaces) {
		t.Fatalf("markers after first search = %d, want %d", len(r.lastSet), len(testPlaces))
	}

	c.SearchCity(context.Background(), "Brigadoon")
	v.Sync()
	if r.setCalls != 2 {
		t.Fatalf("SetMarkers calls = %d, want the empty search to re-render", r.setCalls)
	}
	if len(r.lastSet) != 0 {
		t.Errorf("markers after empty search = %d, want none", len(r.lastSet))
	}
}

func TestSyncKeepsMarkersOnError(t *testing.T) {
	fake := &backendtest.Client{
		RecommendationsFunc: func(ctx context.Context, token string, query models.RecommendationQuery) ([]models.Place, error) {
			if query.City == "Madrid" {
				return testPlaces, nil
			}
			return nil, &backend.APIError{Message: backend.ErrConexion}
		},
	}
	c := newTestController(fake, nil)
	r := &fakeRenderer{}
	v := NewMapView(r, c)

	c.SearchCity(context.Background(), "Madrid")
	v.Sync()

	c.SearchCity(context.Background(), "Lima")
	v.Sync()
	if r.setCalls != 1 {
		t.Errorf("SetMarkers calls after a failed search = %d, want 1", r.setCalls)
	}
	if len(r.lastSet) != len(testPlaces) {
		t.Errorf("markers after a failed search = %d, want the prior set kept", len(r.lastSet))
	}
}

func TestMarkerClickOutOfRange(t *testing.T) {
	v, r, _ := newSyncedView(t)
	before := r.setCalls

	v.HandleMarkerClick(99)
	if r.setCalls != before || r.flyCalls != 0 {
		t.Error("out-of-range click reached the renderer")
	}
}
