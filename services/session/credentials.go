// File: smarttravel/services/session/credentials.go
package session

import (
	"context"
	"sync"

	"smarttravel/models"
)

// Credentials is the pair persisted client-side: the bearer token and
// the serialized user. They are always written and cleared together.
type Credentials struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// Event signals a credential change made by another writer sharing the
// same store (another tab, or another gateway instance on Redis).
type Event int

const (
	// EventCleared means the credential was removed elsewhere.
	EventCleared Event = iota
	// EventUpdated means a new credential was stored elsewhere.
	EventUpdated
)

// CredentialStore persists credentials and, when the backing store is
// shared, surfaces changes made by other writers. Load returns
// (nil, nil) when no credentials are stored.
type CredentialStore interface {
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
	// Watch delivers change events until ctx is done. Stores with no
	// sharing semantics may make this a no-op.
	Watch(ctx context.Context, fn func(Event)) error
}

// MemoryStore is an in-process CredentialStore. It delivers watch
// events synchronously, which makes it the test double for the
// cross-tab behavior of the shared stores.
type MemoryStore struct {
	mu       sync.Mutex
	creds    *Credentials
	watchers []func(Event)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds == nil {
		return nil, nil
	}
	c := *m.creds
	return &c, nil
}

func (m *MemoryStore) Save(ctx context.Context, creds Credentials) error {
	m.mu.Lock()
	m.creds = &creds
	watchers := append([]func(Event){}, m.watchers...)
	m.mu.Unlock()
	for _, fn := range watchers {
		fn(EventUpdated)
	}
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.creds = nil
	watchers := append([]func(Event){}, m.watchers...)
	m.mu.Unlock()
	for _, fn := range watchers {
		fn(EventCleared)
	}
	return nil
}

func (m *MemoryStore) Watch(ctx context.Context, fn func(Event)) error {
	m.mu.Lock()
	m.watchers = append(m.watchers, fn)
	m.mu.Unlock()
	return nil
}
