// Package session owns the client's authentication state: the current
// identity, the bearer token, and the startup loading gate. It is the only
// place the token and identity are mutated; everything else reads snapshots
// or subscribes to changes.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/ventline/ventline/internal/client/models"
	"github.com/ventline/ventline/internal/client/repositories/tokens"
)

// TokenKey is the fixed name the session token is persisted under.
const TokenKey = "session_token"

// Verifier checks a persisted token by fetching the identity it belongs to.
// The API client satisfies this with its CurrentUser call.
type Verifier interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Session is a read-only snapshot of the store. Identity is nil until a
// login succeeds; IsLoading is true only during Initialize.
type Session struct {
	Identity  *models.User
	IsLoading bool
}

// Store holds the session. Writes replace the whole state under the mutex,
// so observers never see a token without its identity or vice versa.
type Store struct {
	mu        sync.Mutex
	token     string
	identity  *models.User
	isLoading bool

	repo        tokens.Repository
	subscribers []func(Session)
}

// NewStore builds a store over the given token repository. The store starts
// in the loading state; callers must run Initialize before rendering
// anything that depends on the session.
func NewStore(repo tokens.Repository) *Store {
	return &Store{repo: repo, isLoading: true}
}

// Initialize restores a persisted session: if a token is stored, it is
// verified against the server and the identity populated. Any failure
// (invalid token, expired token, the network being down) fails closed:
// the token is cleared and the client starts logged out. Returns only
// errors from the local token store itself.
func (s *Store) Initialize(ctx context.Context, verifier Verifier) error {
	token, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		s.setState("", nil, false)
		return fmt.Errorf("reading persisted token: %w", err)
	}

	if token == "" {
		s.setState("", nil, false)
		return nil
	}

	// The adapter reads the token through Token(), so it must be visible
	// before the verification call goes out.
	s.setState(token, nil, true)

	identity, err := verifier.CurrentUser(ctx)
	if err != nil {
		if delErr := s.repo.Delete(ctx, TokenKey); delErr != nil {
			s.setState("", nil, false)
			return fmt.Errorf("clearing rejected token: %w", delErr)
		}
		s.setState("", nil, false)
		return nil
	}

	s.setState(token, identity, false)
	return nil
}

// Login persists the token and installs the identity. Idempotent: calling it
// again with the same pair (or the same token with a refreshed identity,
// as after a profile update) just replaces the state.
func (s *Store) Login(ctx context.Context, token string, identity *models.User) error {
	if err := s.repo.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	s.setState(token, identity, false)
	return nil
}

// Logout clears the persisted token and the in-memory identity.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.repo.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	s.setState("", nil, false)
	return nil
}

// Current returns a snapshot of the session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{Identity: s.identity, IsLoading: s.isLoading}
}

// Token returns the current bearer token, or "" when logged out. Intended
// as the api.TokenSource for the HTTP adapter.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Subscribe registers fn to be called with the new snapshot after every
// state change. Subscribers are invoked synchronously outside the lock.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) setState(token string, identity *models.User, isLoading bool) {
	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.isLoading = isLoading
	snapshot := Session{Identity: identity, IsLoading: isLoading}
	subs := make([]func(Session), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
