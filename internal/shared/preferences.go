package shared

import (
	"context"
	"time"

	"github.com/cyberb/web/internal/api"
)

// PreferencesClient is the backend surface the preferences provider needs.
type PreferencesClient interface {
	FetchPreferences(ctx context.Context) (api.Preferences, error)
}

// DefaultPreferencesInterval is the poll interval for user preferences.
// Preferences change rarely, so they refresh slower than status.
const DefaultPreferencesInterval = time.Minute

// NewPreferencesProvider publishes the operator's preferences, falling back
// to api.DefaultPreferences while loading or when the backend is unreachable.
func NewPreferencesProvider(ctx context.Context, client PreferencesClient, opts ...Option) *Provider[api.Preferences] {
	return NewProvider(ctx, client.FetchPreferences, api.DefaultPreferences(), opts...)
}
