// File: smarttravel/services/explore/mapview.go
package explore

import "fmt"

// Marker is one rendered map pin.
type Marker struct {
	Index  int     `json:"index"`
	Label  string  `json:"label"` // 1-based number shown on the pin
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Active bool    `json:"active"`
}

// Renderer is the boundary to the external mapping library. The map
// view never holds authoritative state; it re-derives markers from the
// controller snapshot it is handed.
type Renderer interface {
	SetMarkers(markers []Marker)
	FitBounds(markers []Marker)
	FlyTo(lat, lon float64)
}

// MapView mirrors controller snapshots onto a Renderer and routes
// marker clicks back into the controller. It tracks only what is needed
// to tell "result set changed" and "fly-to trigger changed" apart.
type MapView struct {
	renderer   Renderer
	controller *Controller

	lastGen    uint64
	lastFlySeq uint64
	synced     bool
}

func NewMapView(r Renderer, c *Controller) *MapView {
	return &MapView{renderer: r, controller: c}
}

// Sync pushes the current controller state to the renderer: markers
// mirror the current result set, the viewport is fit when the result
// set changed, and the camera flies to the active marker when the
// trigger moved. An empty search clears the pins; an error leaves the
// previous set in place, matching the untouched result list.
func (v *MapView) Sync() {
	snap := v.controller.State()
	switch snap.Status {
	case StatusResults:
	case StatusEmpty:
		v.renderer.SetMarkers(nil)
		v.lastGen = snap.Generation
		v.synced = true
		return
	default:
		return
	}

	markers := make([]Marker, len(snap.Places))
	for i, p := range snap.Places {
		markers[i] = Marker{
			Index:  i,
			Label:  fmt.Sprintf("%d", i+1),
			Name:   p.Name,
			Lat:    p.Latitude,
			Lon:    p.Longitude,
			Active: i == snap.ActiveIndex,
		}
	}
	v.renderer.SetMarkers(markers)

	if !v.synced || snap.Generation != v.lastGen {
		v.renderer.FitBounds(markers)
		v.lastGen = snap.Generation
	}

	if snap.FlyToSeq != v.lastFlySeq {
		if snap.ActiveIndex >= 0 && snap.ActiveIndex < len(snap.Places) {
			active := snap.Places[snap.ActiveIndex]
			v.renderer.FlyTo(active.Latitude, active.Longitude)
		}
		v.lastFlySeq = snap.FlyToSeq
	}
	v.synced = true
}

// HandleMarkerClick is the marker-click callback handed to the mapping
// library: it drives selection and immediately re-syncs.
func (v *MapView) HandleMarkerClick(index int) {
	if v.controller.SelectPlace(index) {
		v.Sync()
	}
}
