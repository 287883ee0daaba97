// File: smarttravel/services/gateway/session.go
package gateway

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"smarttravel/models"
	"smarttravel/services/explore"
	"smarttravel/services/geocode"
	"smarttravel/services/onboarding"
	"smarttravel/services/session"

	"go.uber.org/zap"
)

// Toast is one transient user-facing notice queued for the client.
type Toast struct {
	Level       string `json:"level"` // "success" or "error"
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

// ToastQueue buffers notices until the client drains them. It is the
// explore.Notifier implementation of the gateway.
type ToastQueue struct {
	mu     sync.Mutex
	toasts []Toast
}

func (q *ToastQueue) Success(message string) {
	q.push(Toast{Level: "success", Message: message})
}

func (q *ToastQueue) Error(message, description string) {
	q.push(Toast{Level: "error", Message: message, Description: description})
}

func (q *ToastQueue) push(t Toast) {
	q.mu.Lock()
	q.toasts = append(q.toasts, t)
	q.mu.Unlock()
}

// Drain returns and clears all pending toasts.
func (q *ToastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.toasts
	q.toasts = nil
	return out
}

// Session aggregates the per-browser client state the gateway hosts:
// one auth session, one onboarding wizard, one explore controller and
// one autocomplete client.
type Session struct {
	ID           string
	Auth         *session.Store
	Wizard       *onboarding.Wizard
	Explore      *explore.Controller
	Map          *MapState
	MapView      *explore.MapView
	Autocomplete *geocode.Autocomplete
	Toasts       *ToastQueue

	mu       sync.Mutex
	lastSeen time.Time
	cancel   context.CancelFunc

	suggestSeq atomic.Uint64
}

// TrackSuggestions subscribes to the autocomplete client so every
// suggestion or loading change stamps a sequence number. The polling
// results endpoint exposes it, letting the browser skip re-rendering an
// unchanged list.
func (s *Session) TrackSuggestions() {
	s.Autocomplete.OnChange(func([]models.Suggestion, bool) {
		s.suggestSeq.Add(1)
	})
}

// SuggestionSeq returns the current suggestion change sequence.
func (s *Session) SuggestionSeq() uint64 {
	return s.suggestSeq.Load()
}

// Touch records activity so the janitor keeps the session alive.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Factory builds the state aggregate for a new browser session. The
// returned cancel func tears down any watches the aggregate started.
type Factory func(ctx context.Context, id string) *Session

// Manager owns all live gateway sessions and evicts idle ones.
type Manager struct {
	factory Factory
	idleTTL time.Duration
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(factory Factory, idleTTL time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		factory:  factory,
		idleTTL:  idleTTL,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating and hydrating a fresh one
// when the id is unknown.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		s.Touch()
		return s
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := m.factory(ctx, id)
	s.cancel = cancel
	s.lastSeen = time.Now()
	m.sessions[id] = s
	m.mu.Unlock()

	s.TrackSuggestions()

	// Instant render from cache, then background revalidation.
	s.Auth.Start(ctx)
	s.Auth.Hydrate(ctx)
	return s
}

// StartJanitor sweeps idle sessions until ctx is done.
func (m *Manager) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep(time.Now())
			}
		}
	}()
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idleTTL {
			s.Autocomplete.Clear()
			if s.cancel != nil {
				s.cancel()
			}
			delete(m.sessions, id)
			m.logger.Debug("evicted idle gateway session", zap.String("id", id))
		}
	}
}
