// File: smarttravel/services/session/store.go
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"smarttravel/services/backend"
	"smarttravel/models"
	"smarttravel/utils"

	"go.uber.org/zap"
)

// Store holds the single client-wide signed-in user. State changes are
// pushed to subscribers instead of living in ambient globals; the header
// and the guarded pages of the web client all observe the same store.
type Store struct {
	backend backend.Client
	creds   CredentialStore
	logger  *zap.Logger

	mu      sync.Mutex
	user    *models.User
	token   string
	loading bool
	subs    map[int]func(*models.User)
	nextSub int

	// writing suppresses watch events caused by this store's own
	// synchronous credential writes (the in-memory store delivers them
	// re-entrantly; the Redis store already filters by origin).
	writing atomic.Int32
}

// NewStore builds a session store over the given backend and credential
// store. Call Start to receive cross-tab credential events.
func NewStore(b backend.Client, creds CredentialStore, logger *zap.Logger) *Store {
	return &Store{
		backend: b,
		creds:   creds,
		logger:  logger,
		loading: true,
		subs:    make(map[int]func(*models.User)),
	}
}

// Start wires the credential-store watch: a removal elsewhere clears
// this session, a new credential elsewhere triggers revalidation. Both
// reactions are idempotent, so echoes of this store's own writes are
// harmless.
func (s *Store) Start(ctx context.Context) {
	err := s.creds.Watch(ctx, func(ev Event) {
		if s.writing.Load() > 0 {
			return
		}
		switch ev {
		case EventCleared:
			s.clearState()
		case EventUpdated:
			if err := s.Revalidate(ctx); err != nil {
				s.logger.Debug("revalidation after credential event failed", zap.Error(err))
			}
		}
	})
	if err != nil {
		s.logger.Warn("credential watch unavailable", zap.Error(err))
	}
}

// Hydrate loads cached credentials for an instant first render, then
// revalidates them against the backend profile endpoint. Any validation
// failure clears both the cached user and the token.
func (s *Store) Hydrate(ctx context.Context) {
	cached, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load cached credentials", zap.Error(err))
	}
	if cached == nil || cached.Token == "" {
		s.setState(nil, "", false)
		return
	}

	// Optimistic render from the cache before the network round trip.
	s.setState(cached.User, cached.Token, true)

	if utils.TokenExpired(cached.Token, time.Now()) {
		s.logger.Info("cached token expired, clearing session")
		s.clearAll(ctx)
		return
	}

	if err := s.Revalidate(ctx); err != nil {
		s.logger.Info("cached session rejected", zap.Error(err))
	}
}

// Revalidate fetches the profile with the current token. On success the
// refreshed user is stored and re-cached; on any failure the session is
// cleared, matching the expiry semantics of the web client.
func (s *Store) Revalidate(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		if cached, _ := s.creds.Load(ctx); cached != nil {
			token = cached.Token
		}
		if token == "" {
			s.setState(nil, "", false)
			return nil
		}
	}

	user, err := s.backend.Profile(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		s.clearAll(ctx)
		return err
	}

	s.setState(user, token, false)
	if err := s.saveCreds(ctx, Credentials{Token: token, User: user}); err != nil {
		s.logger.Warn("failed to refresh cached user", zap.Error(err))
	}
	return nil
}

// SignIn authenticates against the backend and, only on success,
// persists the returned token and user.
func (s *Store) SignIn(ctx context.Context, creds models.LoginCredentials) (*models.User, error) {
	res, err := s.backend.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.Adopt(ctx, res)
}

// Register creates the account and adopts the returned session.
func (s *Store) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	res, err := s.backend.Register(ctx, data)
	if err != nil {
		return nil, err
	}
	return s.Adopt(ctx, res)
}

// Adopt installs an auth response as the current session.
func (s *Store) Adopt(ctx context.Context, res *models.AuthResponse) (*models.User, error) {
	user := res.Usuario
	if err := s.saveCreds(ctx, Credentials{Token: res.Token, User: &user}); err != nil {
		s.logger.Warn("failed to persist credentials", zap.Error(err))
	}
	s.setState(&user, res.Token, false)
	return &user, nil
}

// SetUser replaces the cached user after a profile update and persists
// it alongside the unchanged token.
func (s *Store) SetUser(ctx context.Context, user *models.User) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return
	}
	if err := s.saveCreds(ctx, Credentials{Token: token, User: user}); err != nil {
		s.logger.Warn("failed to persist updated user", zap.Error(err))
	}
	s.setState(user, token, false)
}

// Logout synchronously clears the credential and the user state. It
// never navigates; that is the caller's business.
func (s *Store) Logout(ctx context.Context) {
	s.clearAll(ctx)
}

// User returns the current signed-in user, or nil.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the current bearer token, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// Loading reports whether the initial hydration is still in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers an observer for user changes. The returned func
// cancels the subscription.
func (s *Store) Subscribe(fn func(*models.User)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) saveCreds(ctx context.Context, creds Credentials) error {
	s.writing.Add(1)
	defer s.writing.Add(-1)
	return s.creds.Save(ctx, creds)
}

func (s *Store) clearCreds(ctx context.Context) error {
	s.writing.Add(1)
	defer s.writing.Add(-1)
	return s.creds.Clear(ctx)
}

func (s *Store) clearAll(ctx context.Context) {
	if err := s.clearCreds(ctx); err != nil {
		s.logger.Warn("failed to clear credentials", zap.Error(err))
	}
	s.clearState()
}

func (s *Store) clearState() {
	s.setState(nil, "", false)
}

func (s *Store) setState(user *models.User, token string, loading bool) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.loading = loading
	subs := make([]func(*models.User), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(user)
	}
}
