// Package poll blocks a command until a condition holds or a timeout
// expires. Continuous background polling is the resource package's job;
// this one serves one-off waits such as `status --wait`.
package poll

import (
	"context"
	"fmt"
	"time"
)

const defaultDelay = 1 * time.Second

// ConditionFunc reports whether the wait is over. A non-nil error aborts
// the wait immediately; returning (false, nil) means try again after the
// delay.
type ConditionFunc func(ctx context.Context) (bool, error)

// Poll is a one-off waiting loop with a fixed delay between attempts.
type Poll struct {
	delay   time.Duration
	timeout time.Duration
}

// NewPoll returns a poll with a one-second delay and no timeout.
func NewPoll() *Poll {
	return &Poll{delay: defaultDelay}
}

// WithDelay sets the pause between attempts.
func (p *Poll) WithDelay(delay time.Duration) *Poll {
	p.delay = delay
	return p
}

// WithTimeout bounds the total wait. Zero means wait forever.
func (p *Poll) WithTimeout(timeout time.Duration) *Poll {
	p.timeout = timeout
	return p
}

// Until invokes fn until it reports done, the timeout expires, or the
// context is canceled. fn always runs at least once.
func (p *Poll) Until(ctx context.Context, fn ConditionFunc) error {
	start := time.Now()
	for {
		done, err := fn(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if p.timeout > 0 && time.Since(start) >= p.timeout {
			return fmt.Errorf("timed out after %v", p.timeout)
		}

		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return fmt.Errorf("poll canceled during wait: %w", ctx.Err())
		}
	}
}
