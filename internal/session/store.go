package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-portfolio/internal/api"
	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Authenticator is the slice of the API client the session store depends on.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Verify(ctx context.Context, token string) (content.User, error)
}

// Store owns the bearer token and the authenticated user for the lifetime of
// a client process. It is the single writer of token state; the API client
// reads through the TokenSource view.
type Store struct {
	mu      sync.RWMutex
	token   string
	user    content.User
	hasUser bool

	storage TokenStorage
	auth    Authenticator
	logger  interfaces.Logger

	logoutHooks []func()
}

// StoreOption configures the store at construction time.
type StoreOption func(*Store)

// WithLogger injects the session logger.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLogoutHook registers a callback fired after the session ends, whether
// by explicit logout or backend invalidation. Hooks run outside the store
// lock.
func WithLogoutHook(hook func()) StoreOption {
	return func(s *Store) {
		if hook != nil {
			s.logoutHooks = append(s.logoutHooks, hook)
		}
	}
}

// NewStore builds a signed-out session over the given storage and
// authenticator.
func NewStore(storage TokenStorage, auth Authenticator, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		auth:    auth,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Token implements the API client's TokenSource. An empty string means
// signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a verified session is active.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// CurrentUser returns the authenticated user, if any.
func (s *Store) CurrentUser() (content.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.hasUser
}

// Restore loads a previously persisted token and verifies it against the
// backend. It is a fire-and-forget boot step: any failure, whether the
// token is missing, rejected, or the backend is unreachable, leaves the
// store signed out without error, and the stored credential is discarded
// so it is never silently retried.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.storage.Load()
	if errors.Is(err, ErrNoStoredToken) {
		s.logger.Debug("session.restore.empty")
		return
	}
	if err != nil {
		s.logger.Warn("session.restore.load_failed", "error", err)
		return
	}

	user, err := s.auth.Verify(ctx, token)
	if err != nil {
		reason := "verify failed"
		if errors.Is(err, api.ErrUnauthenticated) {
			reason = "stored token invalid"
		}
		s.logger.Info("session.restore.rejected", "reason", reason, "error", err)
		if clearErr := s.storage.Clear(); clearErr != nil {
			s.logger.Warn("session.restore.clear_failed", "error", clearErr)
		}
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.hasUser = true
	s.mu.Unlock()

	s.logger.Info("session.restore.ok", "user", user.Email)
}

// Login exchanges credentials for a token, persists it, and marks the
// session authenticated. A storage failure is logged but does not undo the
// in-memory session.
func (s *Store) Login(ctx context.Context, email, password string) (content.User, error) {
	email = strings.TrimSpace(email)
	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return content.User{}, err
	}

	s.mu.Lock()
	s.token = result.Token
	s.user = result.User
	s.hasUser = true
	s.mu.Unlock()

	if err := s.storage.Save(result.Token); err != nil {
		s.logger.Warn("session.login.persist_failed", "error", err)
	}

	s.logger.Info("session.login.ok", "user", result.User.Email, "role", result.User.Role)
	return result.User, nil
}

// Logout ends the session and discards the persisted token. Calling it on a
// signed-out store is a no-op.
func (s *Store) Logout() {
	s.end("logout")
}

// Invalidate ends the session after the backend rejected the credential.
// Wire it to the API client's auth failure hook.
func (s *Store) Invalidate() {
	s.end("invalidated")
}

func (s *Store) end(reason string) {
	s.mu.Lock()
	wasActive := s.token != ""
	s.token = ""
	s.user = content.User{}
	s.hasUser = false
	s.mu.Unlock()

	if !wasActive {
		return
	}

	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("session.end.clear_failed", "error", err)
	}
	s.logger.Info("session.end", "reason", reason)

	for _, hook := range s.logoutHooks {
		hook()
	}
}
