package shared

import (
	"context"
	"log/slog"
	"time"

	"github.com/cyberb/web/internal/api"
)

// ShellClient is the backend surface the authenticated shell needs.
type ShellClient interface {
	StatusClient
	PreferencesClient
}

// ShellOptions tunes the shell's providers.
type ShellOptions struct {
	StatusInterval      time.Duration
	PreferencesInterval time.Duration
	Log                 *slog.Logger
}

// Shell is the distribution root for the authenticated console: the status
// provider wraps everything, with preferences nested inside it. Every view
// behind a successful login reads its shared values from here.
type Shell struct {
	Status      *Provider[api.ServiceStatus]
	Preferences *Provider[api.Preferences]
}

// NewShell starts both providers. Provider startup order follows the
// nesting: status first, preferences inside it.
func NewShell(ctx context.Context, client ShellClient, opts ShellOptions) *Shell {
	if opts.StatusInterval <= 0 {
		opts.StatusInterval = DefaultStatusInterval
	}
	if opts.PreferencesInterval <= 0 {
		opts.PreferencesInterval = DefaultPreferencesInterval
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Shell{
		Status: NewStatusProvider(ctx, client,
			WithInterval(opts.StatusInterval), WithLogger(opts.Log)),
		Preferences: NewPreferencesProvider(ctx, client,
			WithInterval(opts.PreferencesInterval), WithLogger(opts.Log)),
	}
}

// Refresh re-issues both fetches immediately.
func (s *Shell) Refresh() {
	s.Status.Refresh()
	s.Preferences.Refresh()
}

// Stop tears the providers down, innermost first.
func (s *Shell) Stop() {
	s.Preferences.Stop()
	s.Status.Stop()
}
