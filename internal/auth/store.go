package auth

import (
	"context"
	"time"
)

// SessionStore adapts a Storage to the session controller's injected
// state handle. The controller reads the flag and sets it exactly once; the
// store fills in the session metadata around it.
type SessionStore struct {
	storage     Storage
	mode        string
	username    string
	serverURL   string
	fakeBackend bool
	now         func() time.Time
}

type SessionStoreOption func(*SessionStore)

// WithSessionDetails records the auth mode, username and server URL to store
// alongside the authenticated flag.
func WithSessionDetails(mode, username, serverURL string) SessionStoreOption {
	return func(s *SessionStore) {
		s.mode = mode
		s.username = username
		s.serverURL = serverURL
	}
}

// WithFakeBackend makes a successful login also write the session cookie
// marker, simulating the cookie a real backend would set.
func WithFakeBackend() SessionStoreOption {
	return func(s *SessionStore) {
		s.fakeBackend = true
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(now func() time.Time) SessionStoreOption {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// Describe records the auth mode and username once they are known; the
// login flow learns them only after the mode probe resolves.
func (s *SessionStore) Describe(mode, username string) {
	s.mode = mode
	s.username = username
}

func NewSessionStore(storage Storage, opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticated reports whether a stored session marks the operator as
// logged in.
func (s *SessionStore) Authenticated() (bool, error) {
	session, err := s.storage.Get()
	if err != nil {
		return false, err
	}
	return session != nil && session.Authenticated, nil
}

// SetAuthenticated persists the authenticated session record.
func (s *SessionStore) SetAuthenticated(_ context.Context) error {
	loginAt := s.now()
	err := s.storage.Store(&Session{
		Authenticated: true,
		Mode:          s.mode,
		Username:      s.username,
		ServerURL:     s.serverURL,
		LoginAt:       &loginAt,
	})
	if err != nil {
		return err
	}
	if s.fakeBackend {
		return WriteCookieMarker()
	}
	return nil
}
