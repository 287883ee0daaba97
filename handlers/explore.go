// File: smarttravel/handlers/explore.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"smarttravel/models"
	"smarttravel/services/explore"
	"smarttravel/services/gateway"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func exploreState(gw *gateway.Session) gin.H {
	snap := gw.Explore.State()
	state := gin.H{
		"status":      snap.Status.String(),
		"city":        snap.City,
		"places":      snap.Places,
		"activeIndex": snap.ActiveIndex,
		"flyToSeq":    snap.FlyToSeq,
		"map":         gw.Map.Snapshot(),
	}
	switch snap.Status {
	case explore.StatusIdle:
		state["popularCities"] = explore.PopularCities
	case explore.StatusError:
		state["error"] = snap.ErrorMessage
	case explore.StatusEmpty:
		state["message"] = snap.EmptyMessage
	}
	return state
}

// ExploreSearchHandler runs a recommendation search. A request carrying
// the lat/lon of a picked suggestion searches by coordinates; otherwise
// by city name. The autocomplete client is cleared first so a late
// suggestion response cannot overwrite newer state.
func ExploreSearchHandler(c *gin.Context) {
	logger := getLogger(c)
	gw := currentSession(c)
	if gw == nil {
		return
	}

	var req struct {
		City string `json:"city"`
		Lat  string `json:"lat,omitempty"`
		Lon  string `json:"lon,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Indica una ciudad o destino"})
		return
	}

	gw.Autocomplete.Clear()

	if req.Lat != "" && req.Lon != "" {
		lat, latErr := strconv.ParseFloat(req.Lat, 64)
		lon, lonErr := strconv.ParseFloat(req.Lon, 64)
		if latErr != nil || lonErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coordenadas inválidas"})
			return
		}
		logger.Debug("explore search by coordinates", zap.String("city", city))
		gw.Explore.SearchCoordinates(c.Request.Context(), city,
			models.Coordinates{Latitude: lat, Longitude: lon})
	} else {
		logger.Debug("explore search by city", zap.String("city", city))
		gw.Explore.SearchCity(c.Request.Context(), city)
	}

	gw.MapView.Sync()
	c.JSON(http.StatusOK, exploreState(gw))
}

// ExploreRetryHandler replays the prior query after a failure.
func ExploreRetryHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	gw.Explore.Retry(c.Request.Context())
	gw.MapView.Sync()
	c.JSON(http.StatusOK, exploreState(gw))
}

// ExploreSelectHandler selects a result by index; re-selecting the
// active one still bumps the fly-to trigger.
func ExploreSelectHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}
	if !gw.Explore.SelectPlace(req.Index) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Índice fuera de rango"})
		return
	}
	gw.MapView.Sync()
	c.JSON(http.StatusOK, exploreState(gw))
}

// ExploreStateHandler reports the current search and map state.
func ExploreStateHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	c.JSON(http.StatusOK, exploreState(gw))
}

// AutocompleteInputHandler feeds one keystroke's worth of input into
// the debounced geocoder client.
func AutocompleteInputHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}
	gw.Autocomplete.Search(req.Query)
	c.JSON(http.StatusOK, gin.H{
		"loading": gw.Autocomplete.Loading(),
		"seq":     gw.SuggestionSeq(),
	})
}

// AutocompleteClearHandler cancels any pending lookup and empties the
// suggestions.
func AutocompleteClearHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	gw.Autocomplete.Clear()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AutocompleteResultsHandler serves the current suggestions. Lat/lon
// stay strings end to end; the seq lets a poller skip an unchanged
// list.
func AutocompleteResultsHandler(c *gin.Context) {
	gw := currentSession(c)
	if gw == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestions": gw.Autocomplete.Suggestions(),
		"loading":     gw.Autocomplete.Loading(),
		"seq":         gw.SuggestionSeq(),
	})
}
