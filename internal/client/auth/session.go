// Package auth owns the client session: the bearer token, the identity
// decoded from it and the authenticated/anonymous state other components
// subscribe to.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
	"github.com/dmitrijs2005/gophcontacts/internal/logging"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Store persists the token between runs. Load returns "" when nothing is
// stored.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token, email string) error
	Clear(ctx context.Context) error
}

// Listener is called after every state change, outside the session lock.
type Listener func(ctx context.Context, state State)

type Option func(*Session)

// WithAvatars sets the avatar pool identities pick from.
func WithAvatars(avatars []string) Option {
	return func(s *Session) { s.avatars = append([]string(nil), avatars...) }
}

// WithExpiryBuffer overrides DefaultExpiryBuffer for Session.IsExpiringSoon.
func WithExpiryBuffer(d time.Duration) Option {
	return func(s *Session) { s.buffer = d }
}

type Session struct {
	store   Store
	logger  logging.Logger
	avatars []string
	buffer  time.Duration
	now     func() time.Time

	mu        sync.RWMutex
	token     string
	state     State
	identity  models.Identity
	listeners []Listener
}

func NewSession(store Store, logger logging.Logger, opts ...Option) *Session {
	s := &Session{
		store:  store,
		logger: logger,
		buffer: DefaultExpiryBuffer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l for state changes and returns a function that
// removes it.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, l)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

// Restore loads the persisted token. A token that cannot be decoded or has
// already expired is deleted and the session stays anonymous.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil
	}

	claims, err := DecodeToken(token)
	if err == nil && !claims.ExpiresAt.IsZero() && !s.now().Before(claims.ExpiresAt) {
		err = fmt.Errorf("token expired at %s", claims.ExpiresAt.Format(time.RFC3339))
	}
	if err != nil {
		s.logger.Warn(ctx, "discarding stored token", "error", err)
		if cerr := s.store.Clear(ctx); cerr != nil {
			return fmt.Errorf("clear token: %w", cerr)
		}
		return nil
	}

	s.authenticate(ctx, token, claims)
	return nil
}

// Login adopts a freshly issued token. The token is accepted even when it is
// close to expiry; callers check IsExpiringSoon.
func (s *Session) Login(ctx context.Context, token string) error {
	claims, err := DecodeToken(token)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, token, claims.Email); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	s.authenticate(ctx, token, claims)
	return nil
}

func (s *Session) authenticate(ctx context.Context, token string, claims Claims) {
	if claims.Subject == "" || claims.Email == "" {
		s.logger.Warn(ctx, "token lacks identity claims", "subject", claims.Subject, "email", claims.Email)
	}

	s.mu.Lock()
	s.token = token
	s.state = StateAuthenticated
	s.identity = models.Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		AvatarRef: pickAvatar(s.avatars, claims.Email),
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "session authenticated", "user", claims.Subject)
	s.broadcast(ctx, StateAuthenticated)
}

// Logout forgets the token in memory and in the store, then tells every
// subscriber to reset. The in-memory state is cleared even when the store
// fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.state = StateAnonymous
	s.identity = models.Identity{}
	s.mu.Unlock()

	err := s.store.Clear(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to clear stored token", "error", err)
		err = fmt.Errorf("clear token: %w", err)
	}

	s.logger.Info(ctx, "session ended")
	s.broadcast(ctx, StateAnonymous)
	return err
}

// HandleUnauthorized ends an authenticated session after the API rejected
// its token. It does nothing for an anonymous session.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	if !s.Authenticated() {
		return
	}
	s.logger.Warn(ctx, "api rejected the session token, logging out")
	_ = s.Logout(ctx)
}

func (s *Session) broadcast(ctx context.Context, state State) {
	s.mu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()

	for _, l := range listeners {
		if l != nil {
			l(ctx, state)
		}
	}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

func (s *Session) Identity() models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// IsExpiringSoon checks the current token against the configured buffer.
func (s *Session) IsExpiringSoon() bool {
	return expiringSoon(s.Token(), s.buffer, s.now())
}

// ExpiresAt returns the expiry of the current token, zero when unknown.
func (s *Session) ExpiresAt() time.Time {
	c, err := DecodeToken(s.Token())
	if err != nil {
		return time.Time{}
	}
	return c.ExpiresAt
}
