package shared

import (
	"context"
	"time"

	"github.com/cyberb/web/internal/api"
)

// StatusClient is the backend surface the status provider needs.
type StatusClient interface {
	FetchStatus(ctx context.Context) (api.ServiceStatus, error)
}

// DefaultStatusInterval is the poll interval for the service status.
const DefaultStatusInterval = 10 * time.Second

// NewStatusProvider publishes the backend service status, falling back to
// api.StatusUnknown while loading or when the backend is unreachable.
func NewStatusProvider(ctx context.Context, client StatusClient, opts ...Option) *Provider[api.ServiceStatus] {
	return NewProvider(ctx, client.FetchStatus, api.StatusUnknown, opts...)
}
