// Package shared publishes live console values (service status, user
// preferences) to any number of consumers without threading them through
// call chains. A Provider owns one polled resource and projects its
// tri-state result onto a concrete value with a caller-supplied fallback.
package shared

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cyberb/web/internal/resource"
)

// Value is the published projection of a resource's state: always a concrete
// value, falling back to the provider's default while loading or after a
// failed fetch.
type Value[T any] struct {
	Value T
	// Live reports whether Value comes from a successful fetch rather than
	// the fallback default.
	Live bool
	// UpdatedAt is the time of the last successful fetch, zero before the
	// first one.
	UpdatedAt time.Time
}

// Option configures a Provider.
type Option func(*providerConfig)

type providerConfig struct {
	interval time.Duration
	log      *slog.Logger
}

// WithInterval enables settle-to-next-issue polling on the underlying
// resource.
func WithInterval(d time.Duration) Option {
	return func(c *providerConfig) {
		c.interval = d
	}
}

// WithLogger injects a logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *providerConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// Provider wraps a resource and fans its projected Value out to subscribers.
// The provider is the single writer of the published value; consumers mutate
// it only indirectly, via Refresh.
type Provider[T any] struct {
	log *slog.Logger
	def T

	mu      sync.RWMutex
	cur     Value[T]
	subs    map[int]func(Value[T])
	nextSub int

	res *resource.Resource[T]
}

// NewProvider creates a provider and starts its resource; the first fetch is
// issued immediately and Get serves the default until it succeeds.
func NewProvider[T any](ctx context.Context, fetch resource.FetchFunc[T], def T, opts ...Option) *Provider[T] {
	cfg := &providerConfig{log: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	p := &Provider[T]{
		log:  cfg.log,
		def:  def,
		cur:  Value[T]{Value: def},
		subs: map[int]func(Value[T]){},
	}
	resOpts := []resource.Option[T]{
		resource.WithLogger[T](cfg.log),
		resource.WithIgnoreCancel[T](),
	}
	if cfg.interval > 0 {
		resOpts = append(resOpts, resource.WithInterval[T](cfg.interval))
	}
	p.res = resource.New(ctx, fetch, p.apply, resOpts...)
	return p
}

// Get returns the current published value. Reads are consistent: a consumer
// never observes a partially updated value.
func (p *Provider[T]) Get() Value[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cur
}

// Refresh re-issues the underlying fetch immediately, superseding any
// pending poll tick.
func (p *Provider[T]) Refresh() {
	p.res.Refresh()
}

// Subscribe registers a callback invoked on every published transition with
// the new value. The returned cancel function removes the subscription.
// Callbacks run sequentially on the provider's delivery goroutine.
func (p *Provider[T]) Subscribe(fn func(Value[T])) (cancel func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Stop tears down the underlying resource. No subscriber is invoked after
// Stop returns.
func (p *Provider[T]) Stop() {
	p.res.Stop()
}

func (p *Provider[T]) apply(st resource.State[T]) {
	p.mu.Lock()
	switch st.Kind {
	case resource.KindOk:
		p.cur = Value[T]{Value: st.Value, Live: true, UpdatedAt: time.Now()}
	case resource.KindErr:
		p.log.Debug("fetch failed, publishing fallback value", "error", st.Err)
		p.cur = Value[T]{Value: p.def}
	default:
		p.cur = Value[T]{Value: p.def}
	}
	v := p.cur
	subs := make([]func(Value[T]), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}
