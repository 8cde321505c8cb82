// Package session implements the login state machine of the console client:
// it negotiates the backend's auth mode, transforms credentials for the wire,
// submits them, and on success marks the session authenticated and drives
// post-login navigation.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cyberb/web/internal/api"
)

// Phase is the controller's current position in the login flow.
type Phase int

const (
	// PhaseDetectingMode probes the backend for its auth mode. Input is
	// already accepted under the optimistic local-mode assumption.
	PhaseDetectingMode Phase = iota
	// PhaseAwaitingInput holds the credential draft; every keystroke is a
	// local mutation, no network calls.
	PhaseAwaitingInput
	// PhaseSubmitting has exactly one authentication request in flight.
	PhaseSubmitting
	// PhaseAuthenticated is terminal; navigation follows.
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseDetectingMode:
		return "detecting-mode"
	case PhaseAwaitingInput:
		return "awaiting-input"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrSubmitInFlight is returned when Submit is called while a previous
// authentication request has not settled.
var ErrSubmitInFlight = errors.New("an authentication request is already in flight")

// ErrAlreadyAuthenticated is returned when Submit is called after the
// controller reached its terminal phase.
var ErrAlreadyAuthenticated = errors.New("session is already authenticated")

// Credentials is the operator's login draft. Username is meaningful only in
// LDAP mode.
type Credentials struct {
	Username string
	Password string
}

// Backend is the authentication surface of the console API.
type Backend interface {
	ProbeAuthMode(ctx context.Context) (api.AuthMode, error)
	AuthenticateLocal(ctx context.Context, hashedPasswordHex string) error
	AuthenticateLDAP(ctx context.Context, username, password string) error
}

// Navigator drives post-login navigation. RequestedPath returns the path the
// operator originally asked for before being bounced to the login surface,
// or "" when none was recorded.
type Navigator interface {
	Redirect(path string)
	RequestedPath() string
}

// Store is the injected session-state handle. The controller is its single
// writer and sets the flag exactly once, on successful authentication.
type Store interface {
	Authenticated() (bool, error)
	SetAuthenticated(ctx context.Context) error
}

// RootPath is the post-login destination when no path was recorded.
const RootPath = "/"

// Option configures a Controller.
type Option func(*Controller)

// WithCookieCheck injects the environment probe for persistent cookie
// support. It is sampled once at Start; a negative result only raises a
// non-blocking advisory.
func WithCookieCheck(check func() bool) Option {
	return func(c *Controller) {
		c.cookieCheck = check
	}
}

// WithLogger injects a logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// Controller is the login state machine. Methods are safe for concurrent
// use; the credential draft is purely local state between Start and Submit.
type Controller struct {
	log         *slog.Logger
	backend     Backend
	nav         Navigator
	store       Store
	cookieCheck func() bool

	mu            sync.Mutex
	phase         Phase
	mode          api.AuthMode
	draft         Credentials
	errFlagged    bool
	lastErr       error
	cookieWarning bool
}

// NewController wires the collaborators together. Nothing runs until Start.
func NewController(backend Backend, nav Navigator, store Store, opts ...Option) *Controller {
	c := &Controller{
		log:     slog.Default(),
		backend: backend,
		nav:     nav,
		store:   store,
		phase:   PhaseDetectingMode,
		mode:    api.AuthModeLocal,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start brings the controller up. If the session is already authenticated it
// redirects away from the login surface without any network call. Otherwise
// it probes the backend's auth mode; a failed probe falls back to the local
// default rather than blocking the form.
func (c *Controller) Start(ctx context.Context) error {
	if c.cookieCheck != nil && !c.cookieCheck() {
		c.mu.Lock()
		c.cookieWarning = true
		c.mu.Unlock()
	}

	authenticated, err := c.store.Authenticated()
	if err != nil {
		return err
	}
	if authenticated {
		c.mu.Lock()
		c.phase = PhaseAuthenticated
		c.mu.Unlock()
		c.nav.Redirect(c.destination())
		return nil
	}

	mode, err := c.backend.ProbeAuthMode(ctx)
	if err != nil {
		// ProbeFailure policy: keep the local-mode default.
		c.log.Debug("auth mode probe failed, assuming local mode", "error", err)
		mode = api.AuthModeLocal
	}

	c.mu.Lock()
	c.mode = mode
	c.phase = PhaseAwaitingInput
	c.mu.Unlock()
	return nil
}

// SetUsername updates the draft. Only meaningful in LDAP mode.
func (c *Controller) SetUsername(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Username = username
}

// SetPassword updates the draft.
func (c *Controller) SetPassword(password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Password = password
}

// Submit sends the current draft to the backend. The draft's password and
// any previous error flag are cleared immediately, before the request
// settles. In local mode the password is doubly SHA-256 hashed; in LDAP mode
// the raw credentials are forwarded. On success the session flag is set, and
// exactly one redirect is issued to the recorded destination, or to the root
// when none was recorded. On rejection the controller returns to
// AwaitingInput with the error flagged, ready for resubmission.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.phase {
	case PhaseSubmitting:
		c.mu.Unlock()
		return ErrSubmitInFlight
	case PhaseAuthenticated:
		c.mu.Unlock()
		return ErrAlreadyAuthenticated
	}
	mode := c.mode
	draft := c.draft
	c.draft.Password = ""
	c.errFlagged = false
	c.lastErr = nil
	c.phase = PhaseSubmitting
	c.mu.Unlock()

	var err error
	switch mode {
	case api.AuthModeLDAP:
		err = c.backend.AuthenticateLDAP(ctx, draft.Username, draft.Password)
	default:
		err = c.backend.AuthenticateLocal(ctx, HashPassword(draft.Password))
	}
	if err == nil {
		err = c.store.SetAuthenticated(ctx)
	}

	c.mu.Lock()
	if err != nil {
		c.phase = PhaseAwaitingInput
		c.errFlagged = true
		c.lastErr = err
		c.mu.Unlock()
		return err
	}
	c.phase = PhaseAuthenticated
	c.mu.Unlock()

	c.nav.Redirect(c.destination())
	return nil
}

// destination resolves the post-login target path.
func (c *Controller) destination() string {
	if path := c.nav.RequestedPath(); path != "" {
		return path
	}
	return RootPath
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Mode returns the auth mode in effect: the probe's answer, or the local
// default while detecting or after a failed probe.
func (c *Controller) Mode() api.AuthMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// UsernameRequired reports whether the visible form needs a username field.
func (c *Controller) UsernameRequired() bool {
	return c.Mode() == api.AuthModeLDAP
}

// Draft returns the current credential draft.
func (c *Controller) Draft() Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// ErrFlagged reports whether the last submission was rejected. The flag
// clears when a new submission starts, not when it settles.
func (c *Controller) ErrFlagged() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errFlagged, c.lastErr
}

// CookieWarning reports the non-blocking advisory raised when the
// environment does not accept persistent cookies. It never affects
// submission.
func (c *Controller) CookieWarning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cookieWarning
}
