// File: smarttravel/services/explore/controller.go
package explore

import (
	"context"
	"fmt"
	"sync"

	"smarttravel/services/backend"
	"smarttravel/models"
	"smarttravel/services/session"

	"go.uber.org/zap"
)

// Status is the derived UI state of the explore search.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusEmpty
	StatusResults
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusEmpty:
		return "empty"
	case StatusResults:
		return "results"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// PopularCities are the quick-search chips shown before a first search.
var PopularCities = []string{"Madrid", "Bogotá", "Buenos Aires", "Ciudad de México", "Lima"}

// Notifier receives the transient user-facing notices the search flow
// produces (toasts in the web UI).
type Notifier interface {
	Success(message string)
	Error(message, description string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) Success(string)       {}
func (NopNotifier) Error(string, string) {}

// Snapshot is a consistent read of the controller state.
type Snapshot struct {
	Status       Status
	City         string
	Places       []models.Place
	ActiveIndex  int // -1 when nothing is selected
	FlyToSeq     uint64
	Generation   uint64
	ErrorMessage string
	EmptyMessage string
}

// Controller coordinates one active recommendation search and the
// selection state shared with the map. A new search from any state goes
// straight to loading; a monotonic generation counter makes sure a slow
// superseded search can never overwrite a faster later one.
type Controller struct {
	Backend  backend.Client
	Session  *session.Store
	Notifier Notifier
	Logger   *zap.Logger
	RadiusKm float64
	Language string

	mu          sync.Mutex
	status      Status
	query       models.RecommendationQuery
	hasQuery    bool
	errMessage  string
	places      []models.Place
	activeIndex int
	flyToSeq    uint64
	generation  uint64
}

func NewController(b backend.Client, s *session.Store, n Notifier, logger *zap.Logger, radiusKm float64, language string) *Controller {
	if n == nil {
		n = NopNotifier{}
	}
	return &Controller{
		Backend:     b,
		Session:     s,
		Notifier:    n,
		Logger:      logger,
		RadiusKm:    radiusKm,
		Language:    language,
		activeIndex: -1,
	}
}

// SearchCity runs a search-by-city-name query.
func (c *Controller) SearchCity(ctx context.Context, city string) {
	c.run(ctx, models.CityQuery(city, c.RadiusKm, c.Language))
}

// SearchCoordinates runs a search by coordinates, keeping city as the
// display label. Used when the user picked an autocomplete suggestion.
func (c *Controller) SearchCoordinates(ctx context.Context, city string, coords models.Coordinates) {
	c.run(ctx, models.CoordinateQuery(city, coords, c.RadiusKm, c.Language))
}

// Retry replays the exact prior query. Without one it is a no-op.
func (c *Controller) Retry(ctx context.Context) {
	c.mu.Lock()
	query, ok := c.query, c.hasQuery
	c.mu.Unlock()
	if !ok {
		return
	}
	c.run(ctx, query)
}

func (c *Controller) run(ctx context.Context, query models.RecommendationQuery) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.status = StatusLoading
	c.errMessage = ""
	c.activeIndex = -1
	c.query = query
	c.hasQuery = true
	c.mu.Unlock()

	places, err := c.Backend.Recommendations(ctx, c.Session.Token(), query)

	c.mu.Lock()
	if gen != c.generation {
		// A newer search superseded this one while it was in flight.
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.errMessage = err.Error()
		c.status = StatusError
		msg := c.errMessage
		c.mu.Unlock()
		c.Logger.Warn("recommendation search failed",
			zap.String("city", query.City), zap.Error(err))
		c.Notifier.Error("Error en la búsqueda", msg)
		return
	}

	c.places = places
	if len(places) == 0 {
		c.status = StatusEmpty
		c.mu.Unlock()
		return
	}

	c.status = StatusResults
	c.activeIndex = 0
	count := len(places)
	c.mu.Unlock()
	c.Notifier.Success(fmt.Sprintf("%d lugares encontrados en %s", count, query.City))
}

// SelectPlace sets the active result and bumps the fly-to trigger so
// the map animates even when the same index is re-selected. Out of
// range indexes are rejected.
func (c *Controller) SelectPlace(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusResults || index < 0 || index >= len(c.places) {
		return false
	}
	c.activeIndex = index
	c.flyToSeq++
	return true
}

// ActivePlace returns the selected place, or nil.
func (c *Controller) ActivePlace() *models.Place {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeIndex < 0 || c.activeIndex >= len(c.places) {
		return nil
	}
	p := c.places[c.activeIndex]
	return &p
}

// State returns a consistent snapshot for rendering.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Status:       c.status,
		City:         c.query.City,
		Places:       append([]models.Place(nil), c.places...),
		ActiveIndex:  c.activeIndex,
		FlyToSeq:     c.flyToSeq,
		Generation:   c.generation,
		ErrorMessage: c.errMessage,
	}
	if c.status == StatusEmpty {
		snap.EmptyMessage = fmt.Sprintf(
			"No encontramos recomendaciones para %q. Intenta con otra ciudad o destino.",
			c.query.City)
	}
	return snap
}
