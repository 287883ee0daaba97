// File: smarttravel/services/geocode/autocomplete.go
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"smarttravel/models"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MinQueryLen is the trimmed length below which no request is issued
// and suggestions are cleared immediately.
const MinQueryLen = 2

// Config tunes an Autocomplete client. Zero values fall back to the
// Nominatim-friendly defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	Language  string
	Limit     int
	Debounce  time.Duration
	HTTP      *http.Client
}

// Autocomplete issues debounced, cancelable city lookups against a
// Nominatim-compatible search endpoint. Each keystroke restarts the
// debounce timer and aborts any in-flight request; only the latest
// non-aborted response may update the suggestion state.
type Autocomplete struct {
	cfg     Config
	limiter *rate.Limiter
	logger  *zap.Logger

	mu          sync.Mutex
	seq         uint64
	timer       *time.Timer
	cancel      context.CancelFunc
	suggestions []models.Suggestion
	loading     bool
	onChange    func([]models.Suggestion, bool)
}

// NewAutocomplete builds an autocomplete client. The shared limiter
// keeps one gateway from flooding the public geocoder regardless of how
// fast the user types.
func NewAutocomplete(cfg Config, limiter *rate.Limiter, logger *zap.Logger) *Autocomplete {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org/search"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "SmartTravelCompanion/1.0"
	}
	if cfg.Language == "" {
		cfg.Language = "es"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 6
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 350 * time.Millisecond
	}
	if cfg.HTTP == nil {
		cfg.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 2)
	}
	return &Autocomplete{cfg: cfg, limiter: limiter, logger: logger}
}

// OnChange registers the subscriber notified after every state change.
// The callback runs with the internal lock released.
func (a *Autocomplete) OnChange(fn func(suggestions []models.Suggestion, loading bool)) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

// Search schedules a lookup for query. Below MinQueryLen trimmed
// characters it clears the suggestions synchronously and issues nothing.
func (a *Autocomplete) Search(query string) {
	a.mu.Lock()
	a.stopPendingLocked()

	if len(strings.TrimSpace(query)) < MinQueryLen {
		a.suggestions = nil
		a.loading = false
		a.notifyLocked()
		return
	}

	a.loading = true
	seq := a.seq
	a.timer = time.AfterFunc(a.cfg.Debounce, func() {
		a.fire(seq, query)
	})
	a.notifyLocked()
}

// Clear cancels any pending timer or in-flight request and empties the
// suggestions synchronously. Call it before leaving the search input so
// a late response cannot overwrite newer state.
func (a *Autocomplete) Clear() {
	a.mu.Lock()
	a.stopPendingLocked()
	a.suggestions = nil
	a.loading = false
	a.notifyLocked()
}

// Suggestions returns a copy of the current suggestion list.
func (a *Autocomplete) Suggestions() []models.Suggestion {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Suggestion, len(a.suggestions))
	copy(out, a.suggestions)
	return out
}

// Loading reports whether a lookup is pending or in flight.
func (a *Autocomplete) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// stopPendingLocked invalidates the current lookup generation, stops
// the debounce timer and aborts any in-flight request. Callers hold
// a.mu. The generation bump covers the window between the timer firing
// and the fired goroutine registering its cancel func.
func (a *Autocomplete) stopPendingLocked() {
	a.seq++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// notifyLocked snapshots state, releases a.mu and invokes the
// subscriber. Callers hold a.mu and must not unlock it themselves.
func (a *Autocomplete) notifyLocked() {
	fn := a.onChange
	suggestions := make([]models.Suggestion, len(a.suggestions))
	copy(suggestions, a.suggestions)
	loading := a.loading
	a.mu.Unlock()
	if fn != nil {
		fn(suggestions, loading)
	}
}

// fire runs after the debounce window. It owns its cancellation context
// and never applies a response once its generation has been superseded.
func (a *Autocomplete) fire(seq uint64, query string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.mu.Lock()
	if seq != a.seq {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.cancel = cancel
	a.mu.Unlock()

	suggestions, err := a.lookup(ctx, query)

	a.mu.Lock()
	if seq != a.seq || ctx.Err() != nil {
		// Aborted by a newer Search or Clear: not an error, and this
		// response must not touch state.
		a.mu.Unlock()
		return
	}
	a.cancel = nil
	if err != nil {
		a.logger.Warn("geocode lookup failed", zap.String("query", query), zap.Error(err))
		a.suggestions = nil
	} else {
		a.suggestions = suggestions
	}
	a.loading = false
	a.notifyLocked()
}

func (a *Autocomplete) lookup(ctx context.Context, query string) ([]models.Suggestion, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", fmt.Sprintf("%d", a.cfg.Limit))
	params.Set("accept-language", a.cfg.Language)
	params.Set("featuretype", "city")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	resp, err := a.cfg.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("nominatim error: " + resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var suggestions []models.Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
