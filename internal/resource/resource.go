// Package resource is an opinionated engine for fetching remote values in
// webctl, either once or on a settle-to-next-issue polling interval.
//
// A Resource owns exactly one tri-state result (Initial, Ok or Err) and
// delivers every transition to an observer callback. Each fetch carries a
// generation token captured at issue time; a result is applied only when its
// token still matches the current generation, so a superseded fetch can never
// overwrite newer state.
package resource

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Kind discriminates the variants of State.
type Kind int

const (
	// KindInitial means no fetch has settled yet.
	KindInitial Kind = iota
	// KindOk means the last applied fetch succeeded; State.Value is set.
	KindOk
	// KindErr means the last applied fetch failed; State.Err is set.
	KindErr
)

func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindOk:
		return "ok"
	case KindErr:
		return "err"
	default:
		return "unknown"
	}
}

// State is the tri-state result of a Resource. Exactly one variant is current
// at any time; consumers switch on Kind.
type State[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// FetchFunc produces a value. It must honor cancellation of the given
// context; the context is canceled when the fetch is superseded by a refresh,
// a fetch change or teardown.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// ObserverFunc receives every state transition. It is never invoked
// concurrently with itself and never after Stop returns.
type ObserverFunc[T any] func(State[T])

// Option configures a Resource.
type Option[T any] func(*Resource[T])

// WithInterval enables polling: a new fetch is issued the given duration
// after the previous fetch settles. There is never more than one fetch in
// flight for the resource. Zero (the default) means a one-shot fetch.
func WithInterval[T any](d time.Duration) Option[T] {
	return func(r *Resource[T]) {
		r.interval = d
	}
}

// WithIgnoreCancel retains the previous state when a current-generation fetch
// fails with context.Canceled, instead of transitioning to Err. Routine
// supersession never flickers the consumer into an error state.
func WithIgnoreCancel[T any]() Option[T] {
	return func(r *Resource[T]) {
		r.ignoreCancel = true
	}
}

// WithLogger injects a logger. The default is slog.Default().
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(r *Resource[T]) {
		if log != nil {
			r.log = log
		}
	}
}

// Resource fetches a value once or repeatedly and maintains the resulting
// State. All methods are safe for concurrent use.
type Resource[T any] struct {
	interval     time.Duration
	ignoreCancel bool
	log          *slog.Logger

	mu       sync.Mutex
	fetch    FetchFunc[T]
	observer ObserverFunc[T]
	gen      uint64
	state    State[T]
	cancel   context.CancelFunc
	stopped  bool

	kickCh chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a Resource and issues the first fetch immediately. The observer
// may be nil when only polled reads via State are needed.
func New[T any](ctx context.Context, fetch FetchFunc[T], observer ObserverFunc[T], opts ...Option[T]) *Resource[T] {
	r := &Resource[T]{
		log:      slog.Default(),
		fetch:    fetch,
		observer: observer,
		state:    State[T]{Kind: KindInitial},
		kickCh:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	go r.run(ctx)
	return r
}

// State returns a snapshot of the current state.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Refresh cancels any pending poll timer and any in-flight fetch, then issues
// a new fetch immediately. The superseded fetch's eventual result is
// discarded. Refresh after Stop is a no-op.
func (r *Resource[T]) Refresh() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.gen++
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.kick()
}

// SetFetch swaps the fetch function, invalidating any in-flight fetch, and
// issues a fetch with the new function immediately.
func (r *Resource[T]) SetFetch(fetch FetchFunc[T]) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.fetch = fetch
	r.gen++
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.kick()
}

// Stop tears the resource down: the generation advances one final time, any
// in-flight fetch is canceled and its result discarded, and the poll timer is
// cleared. Stop blocks until the run loop has exited, after which the
// observer is guaranteed not to be invoked again. Stop is idempotent.
func (r *Resource[T]) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		<-r.doneCh
		return
	}
	r.stopped = true
	r.gen++
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	close(r.stopCh)
	<-r.doneCh
}

func (r *Resource[T]) kick() {
	select {
	case r.kickCh <- struct{}{}:
	default:
	}
}

func (r *Resource[T]) run(ctx context.Context) {
	defer close(r.doneCh)
	for {
		gen, fctx, fetch, ok := r.begin(ctx)
		if !ok {
			return
		}
		value, err := fetch(fctx)
		st, notify := r.settle(gen, value, err)
		if notify && r.observer != nil {
			r.observer(st)
		}

		// A refresh that arrived while the fetch was in flight restarts
		// the loop without waiting.
		select {
		case <-r.kickCh:
			continue
		default:
		}

		if r.interval <= 0 {
			select {
			case <-r.kickCh:
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
			continue
		}

		timer := time.NewTimer(r.interval)
		select {
		case <-timer.C:
		case <-r.kickCh:
			timer.Stop()
		case <-r.stopCh:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// begin captures the generation token and fetch function for the next fetch
// and arms its cancellation context.
func (r *Resource[T]) begin(ctx context.Context) (uint64, context.Context, FetchFunc[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || ctx.Err() != nil {
		return 0, nil, nil, false
	}
	fctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	return r.gen, fctx, r.fetch, true
}

// settle applies a fetch result if its generation is still current and
// reports whether the observer should be notified.
func (r *Resource[T]) settle(gen uint64, value T, err error) (State[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.stopped || gen != r.gen {
		r.log.Debug("discarding superseded fetch result", "gen", gen)
		return State[T]{}, false
	}
	if err != nil {
		if r.ignoreCancel && errors.Is(err, context.Canceled) {
			return State[T]{}, false
		}
		r.state = State[T]{Kind: KindErr, Err: err}
	} else {
		r.state = State[T]{Kind: KindOk, Value: value}
	}
	return r.state, true
}
