// Package session owns the authenticated identity of one browser.
//
// A Store is the only writer of the session. Readers take a Snapshot or
// Subscribe to be told about every mutation; observers run synchronously,
// after the mutation is applied and before the mutating call returns.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"erp-console/internal/models"
)

// Session is the authenticated actor.
type Session struct {
	ID     string
	Name   string
	Email  string
	Role   models.UserRole
	Status bool
	Token  string
}

func fromUser(u models.User, token string) Session {
	return Session{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
		Token:  token,
	}
}

// Snapshot is a consistent read of the store. Session is nil when nobody is
// signed in; Resolved is false until Bootstrap or Login has completed.
type Snapshot struct {
	Resolved bool
	Session  *Session
	Event    Event
}

// Authenticated reports whether a session is present.
func (s Snapshot) Authenticated() bool { return s.Session != nil }

// Role returns the session role, or "" without a session.
func (s Snapshot) Role() models.UserRole {
	if s.Session == nil {
		return ""
	}
	return s.Session.Role
}

// Event names the mutation that produced a snapshot.
type Event string

const (
	EventNone        Event = ""
	EventBootstrap   Event = "bootstrap"
	EventBootFailed  Event = "bootstrap_failed"
	EventLogin       Event = "login"
	EventLogout      Event = "logout"
	EventInvalidated Event = "invalidated"
)

// Authenticator is the authentication service the store calls.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error)
	Me(ctx context.Context, token string) (models.User, error)
	Logout(ctx context.Context, token string) error
}

// TokenStore is the durable client-side storage for the bearer token.
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error
}

type Store struct {
	auth   Authenticator
	tokens TokenStore
	log    zerolog.Logger
	now    func() time.Time

	// commit serialises token writes with the matching session swap.
	commit sync.Mutex

	mu        sync.Mutex
	resolved  bool
	current   *Session
	observers []observer
	nextID    int
}

type observer struct {
	id int
	fn func(Snapshot)
}

type Option func(*Store)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(auth Authenticator, tokens TokenStore, opts ...Option) *Store {
	s := &Store{
		auth:   auth,
		tokens: tokens,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for every future mutation and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(EventNone)
}

func (s *Store) snapshotLocked(ev Event) Snapshot {
	snap := Snapshot{Resolved: s.resolved, Event: ev}
	if s.current != nil {
		cp := *s.current
		snap.Session = &cp
	}
	return snap
}

// apply swaps the session under the lock and notifies observers with the
// resulting snapshot. Observers must not call back into mutating methods.
func (s *Store) apply(ev Event, next *Session) Snapshot {
	s.mu.Lock()
	s.resolved = true
	s.current = next
	snap := s.snapshotLocked(ev)
	obs := make([]observer, len(s.observers))
	copy(obs, s.observers)
	s.mu.Unlock()

	for _, o := range obs {
		o.fn(snap)
	}
	return snap
}

// Login authenticates creds. On failure the previous session, if any, is
// left as it was and an *AuthError is returned.
func (s *Store) Login(ctx context.Context, creds models.Credentials) (Session, error) {
	res, err := s.auth.Login(ctx, creds)
	if err != nil {
		ae := classify(err)
		s.log.Info().Str("email", creds.Email).Str("kind", ae.Kind.String()).Msg("login rejected")
		return Session{}, ae
	}
	if res.Token == "" {
		return Session{}, &AuthError{Kind: ServerError, Err: errors.New("login response carried no token")}
	}

	next := fromUser(res.User, res.Token)
	s.commit.Lock()
	if err := s.tokens.SetToken(res.Token); err != nil {
		s.commit.Unlock()
		return Session{}, &AuthError{Kind: ServerError, Err: err}
	}
	s.apply(EventLogin, &next)
	s.commit.Unlock()
	s.log.Info().Str("user_id", next.ID).Str("role", string(next.Role)).Msg("signed in")
	return next, nil
}

// Bootstrap restores the session from the durable token. Without a token it
// makes no call. Any failure clears the token and leaves no session.
func (s *Store) Bootstrap(ctx context.Context) (Session, bool) {
	token, ok := s.tokens.Token()
	if !ok || token == "" {
		s.apply(EventBootstrap, nil)
		return Session{}, false
	}

	if s.expired(token) {
		s.log.Debug().Msg("stored token expired, skipping identity fetch")
		s.clear(EventBootFailed)
		return Session{}, false
	}

	user, err := s.auth.Me(ctx, token)
	if err != nil {
		s.log.Debug().Err(err).Msg("identity fetch failed, clearing stored token")
		s.clear(EventBootFailed)
		return Session{}, false
	}

	next := fromUser(user, token)
	s.commit.Lock()
	defer s.commit.Unlock()
	// A logout or login that landed while Me was in flight owns the token now.
	if current, ok := s.tokens.Token(); !ok || current != token {
		snap := s.Snapshot()
		if snap.Session == nil {
			return Session{}, false
		}
		return *snap.Session, true
	}
	s.apply(EventBootstrap, &next)
	return next, true
}

// expired peeks at a JWT exp claim without verifying the signature. Opaque
// tokens are left for the server to judge.
func (s *Store) expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now())
}

// Logout clears the session locally, then tells the server on a best-effort
// basis.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	var token string
	if s.current != nil {
		token = s.current.Token
	}
	s.mu.Unlock()
	if token == "" {
		token, _ = s.tokens.Token()
	}

	s.clear(EventLogout)

	if token == "" {
		return
	}
	if err := s.auth.Logout(ctx, token); err != nil {
		s.log.Debug().Err(err).Msg("server-side logout failed")
	}
}

// Invalidate drops the session after the API rejected its token.
func (s *Store) Invalidate() {
	s.mu.Lock()
	had := s.current != nil
	s.mu.Unlock()
	if !had {
		return
	}
	s.clear(EventInvalidated)
	s.log.Info().Msg("session rejected by the erp api")
}

func (s *Store) clear(ev Event) {
	s.commit.Lock()
	defer s.commit.Unlock()
	s.dropToken()
	s.apply(ev, nil)
}

func (s *Store) dropToken() {
	if err := s.tokens.ClearToken(); err != nil {
		s.log.Warn().Err(err).Msg("clear stored token")
	}
}
