package client

import (
	"context"
	"sync"
	"time"

	"starwash-api/internal/core/domain"
	"starwash-api/internal/pkg/jwt"
)

// State is the session snapshot a front end renders from. Loading is true
// only while a lookup is in flight; it always settles to false.
type State struct {
	User            *User
	Role            domain.Role
	IsAuthenticated bool
	Loading         bool
}

// Session resolves and holds the current operator identity. Every
// transition bumps a generation counter; a lookup that finishes after a
// newer transition started is discarded, so a slow /me response can never
// resurrect a session the operator already left.
type Session struct {
	mu    sync.Mutex
	api   *Client
	creds CredentialStore
	now   func() time.Time
	gen   uint64
	state State
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithClock overrides the session clock, used for expiry checks
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session in the loading state. Call Init to resolve
// any stored credential.
func NewSession(api *Client, creds CredentialStore, opts ...SessionOption) *Session {
	s := &Session{
		api:   api,
		creds: creds,
		now:   time.Now,
		state: State{Loading: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Init restores the session from the credential store. An absent, expired
// or rejected token settles to signed-out without error; the operator just
// logs in again.
func (s *Session) Init(ctx context.Context) error {
	gen := s.begin()

	token, err := s.creds.Load()
	if err != nil || token == "" {
		s.settle(gen, State{})
		return err
	}

	if jwt.Expired(token, s.now()) {
		s.clearIfCurrent(gen)
		s.settle(gen, State{})
		return nil
	}

	id, err := s.api.Me(ctx, token)
	if err != nil {
		s.clearIfCurrent(gen)
		s.settle(gen, State{})
		return nil
	}

	s.settle(gen, State{
		User:            &id.User,
		Role:            id.Role,
		IsAuthenticated: true,
	})
	return nil
}

// Login stores a freshly issued token and resolves its identity. A failed
// lookup rolls the store back so a bad token never lingers.
func (s *Session) Login(ctx context.Context, token string) error {
	gen := s.begin()

	if err := s.creds.Save(token); err != nil {
		s.settle(gen, State{})
		return err
	}

	id, err := s.api.Me(ctx, token)
	if err != nil {
		s.clearIfCurrent(gen)
		s.settle(gen, State{})
		return err
	}

	s.settle(gen, State{
		User:            &id.User,
		Role:            id.Role,
		IsAuthenticated: true,
	})
	return nil
}

// Logout clears the session immediately. Server-side revocation runs in
// the background and is best-effort.
func (s *Session) Logout() {
	token, _ := s.creds.Load()

	s.mu.Lock()
	s.gen++
	s.state = State{}
	s.mu.Unlock()

	_ = s.creds.Clear()

	if token != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
			defer cancel()
			_ = s.api.Logout(ctx, token)
		}()
	}
}

// begin marks a new transition and flips the snapshot to loading
func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state.Loading = true
	return s.gen
}

// settle publishes the outcome of a transition unless a newer one
// superseded it
func (s *Session) settle(gen uint64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	st.Loading = false
	s.state = st
}

// clearIfCurrent drops the stored credential only when no newer transition
// owns the store
func (s *Session) clearIfCurrent(gen uint64) {
	s.mu.Lock()
	current := s.gen == gen
	s.mu.Unlock()
	if current {
		_ = s.creds.Clear()
	}
}
