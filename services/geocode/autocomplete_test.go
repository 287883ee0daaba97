package geocode

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"smarttravel/models"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const testDebounce = 20 * time.Millisecond

func nominatimServer(t *testing.T, requests *atomic.Int64, queries *[]string, mu *sync.Mutex) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		q := r.URL.Query().Get("q")
		if mu != nil {
			mu.Lock()
			*queries = append(*queries, q)
			mu.Unlock()
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("request without a User-Agent header")
		}
		json.NewEncoder(w).Encode([]models.Suggestion{{
			PlaceID:     1,
			DisplayName: q + ", Comunidad, España",
			Lat:         "40.4168",
			Lon:         "-3.7038",
			Address:     models.SuggestionAddress{City: q, Country: "España"},
		}})
	}))
}

func newTestAutocomplete(baseURL string) *Autocomplete {
	return NewAutocomplete(Config{
		BaseURL:  baseURL,
		Debounce: testDebounce,
		HTTP:     &http.Client{Timeout: 2 * time.Second},
	}, rate.NewLimiter(rate.Inf, 1), zap.NewNop())
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestShortQueryIssuesNoRequest(t *testing.T) {
	var requests atomic.Int64
	srv := nominatimServer(t, &requests, nil, nil)
	defer srv.Close()

	a := newTestAutocomplete(srv.URL)
	for _, q := range []string{"", "M", " M ", "\t"} {
		a.Search(q)
	}

	time.Sleep(4 * testDebounce)
	if got := requests.Load(); got != 0 {
		t.Errorf("requests = %d, want 0 for sub-minimum queries", got)
	}
	if a.Loading() {
		t.Error("loading after a short query")
	}
	if len(a.Suggestions()) != 0 {
		t.Error("suggestions after a short query")
	}
}

func TestTypingCoalescesToOneRequest(t *testing.T) {
	var requests atomic.Int64
	var queries []string
	var mu sync.Mutex
	srv := nominatimServer(t, &requests, &queries, &mu)
	defer srv.Close()

	a := newTestAutocomplete(srv.URL)
	for _, q := range []string{"Ma", "Mad", "Madr", "Madri", "Madrid"} {
		a.Search(q)
		time.Sleep(testDebounce / 4)
	}

	waitFor(t, func() bool { return !a.Loading() })

	if got := requests.Load(); got != 1 {
		t.Errorf("requests = %d, want the keystrokes coalesced into 1", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 1 || queries[0] != "Madrid" {
		t.Errorf("queries = %v, want only the final text", queries)
	}
	sugg := a.Suggestions()
	if len(sugg) != 1 || sugg[0].CityName() != "Madrid" {
		t.Errorf("suggestions = %+v", sugg)
	}
}

func TestClearDropsPendingLookup(t *testing.T) {
	var requests atomic.Int64
	srv := nominatimServer(t, &requests, nil, nil)
	defer srv.Close()

	a := newTestAutocomplete(srv.URL)
	a.Search("Madrid")
	a.Clear()

	if a.Loading() {
		t.Error("loading after Clear")
	}
	time.Sleep(4 * testDebounce)
	if got := requests.Load(); got != 0 {
		t.Errorf("requests = %d, want the cleared lookup never sent", got)
	}
	if len(a.Suggestions()) != 0 {
		t.Error("suggestions repopulated after Clear")
	}
}

func TestClearAbortsInFlightRequest(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		json.NewEncoder(w).Encode([]models.Suggestion{{PlaceID: 1, DisplayName: "Madrid"}})
	}))
	defer srv.Close()
	defer close(release)

	a := newTestAutocomplete(srv.URL)
	a.Search("Madrid")
	<-entered
	a.Clear()

	time.Sleep(4 * testDebounce)
	if len(a.Suggestions()) != 0 {
		t.Error("late response repopulated suggestions after Clear")
	}
	if a.Loading() {
		t.Error("loading stuck after Clear")
	}
}

func TestOnChangeNotifications(t *testing.T) {
	var requests atomic.Int64
	srv := nominatimServer(t, &requests, nil, nil)
	defer srv.Close()

	a := newTestAutocomplete(srv.URL)

	type change struct {
		count   int
		loading bool
	}
	var mu sync.Mutex
	var changes []change
	a.OnChange(func(suggestions []models.Suggestion, loading bool) {
		mu.Lock()
		changes = append(changes, change{len(suggestions), loading})
		mu.Unlock()
	})

	a.Search("Madrid")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) >= 2
	})

	mu.Lock()
	defer mu.Unlock()
	if !changes[0].loading || changes[0].count != 0 {
		t.Errorf("first change = %+v, want loading with no suggestions", changes[0])
	}
	last := changes[len(changes)-1]
	if last.loading || last.count != 1 {
		t.Errorf("last change = %+v, want settled with one suggestion", last)
	}
}

func TestLookupErrorClearsSuggestions(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]models.Suggestion{{PlaceID: 1, DisplayName: "Madrid, España"}})
	}))
	defer srv.Close()

	a := newTestAutocomplete(srv.URL)
	a.Search("Madrid")
	waitFor(t, func() bool { return len(a.Suggestions()) == 1 })

	fail.Store(true)
	a.Search("Lima")
	waitFor(t, func() bool { return !a.Loading() })

	if got := a.Suggestions(); len(got) != 0 {
		t.Errorf("suggestions after failed lookup = %+v, want none", got)
	}
}
