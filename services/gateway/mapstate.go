// File: smarttravel/services/gateway/mapstate.go
package gateway

import (
	"sync"

	"smarttravel/services/explore"
)

// FlyTo is a pending camera animation target.
type FlyTo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Seq uint64  `json:"seq"`
}

// MapSnapshot is the render state served to the browser map widget.
type MapSnapshot struct {
	Markers []explore.Marker `json:"markers"`
	FitSeq  uint64           `json:"fitSeq"` // bump means re-fit viewport to all markers
	FlyTo   *FlyTo           `json:"flyTo,omitempty"`
}

// MapState is the gateway-side explore.Renderer: instead of driving a
// mapping library directly it records the latest render commands for
// the browser to apply. Sequence numbers let the widget tell a repeated
// command from no change.
type MapState struct {
	mu      sync.Mutex
	markers []explore.Marker
	fitSeq  uint64
	flyTo   *FlyTo
	flySeq  uint64
}

func NewMapState() *MapState {
	return &MapState{}
}

func (m *MapState) SetMarkers(markers []explore.Marker) {
	m.mu.Lock()
	m.markers = markers
	m.mu.Unlock()
}

func (m *MapState) FitBounds(markers []explore.Marker) {
	m.mu.Lock()
	m.fitSeq++
	m.mu.Unlock()
}

func (m *MapState) FlyTo(lat, lon float64) {
	m.mu.Lock()
	m.flySeq++
	m.flyTo = &FlyTo{Lat: lat, Lon: lon, Seq: m.flySeq}
	m.mu.Unlock()
}

// Snapshot returns the current render state.
func (m *MapState) Snapshot() MapSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MapSnapshot{
		Markers: append([]explore.Marker(nil), m.markers...),
		FitSeq:  m.fitSeq,
		FlyTo:   m.flyTo,
	}
}
