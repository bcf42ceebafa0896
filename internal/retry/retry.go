// Package retry wraps a storage operation in a bounded commit-retry loop.
// The operation is expected to re-read whatever it validates on every
// attempt, so business rules are checked against fresh state after a
// transient failure.
package retry

import (
	"context"
	"time"
)

type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Retryable decides whether an error is transient. Errors it rejects
	// are returned to the caller immediately.
	Retryable func(error) bool
}

// DefaultPolicy is the commit-retry budget used by both ledgers:
// 5 attempts, delays 0.5s, 1s, 2s, 4s, capped at 8s.
func DefaultPolicy(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
		Retryable:   retryable,
	}
}

type Runner struct {
	policy Policy

	// sleep is swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func New(policy Policy) *Runner {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 5
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = 500 * time.Millisecond
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = 8 * time.Second
	}

	return &Runner{
		policy: policy,
		sleep:  ctxSleep,
	}
}

// WithSleep overrides how the runner waits between attempts; tests use it
// to skip real backoff delays.
func (r *Runner) WithSleep(fn func(ctx context.Context, d time.Duration) error) *Runner {
	r.sleep = fn
	return r
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// attempt budget is exhausted, backing off between attempts. The last error
// is returned on exhaustion.
func (r *Runner) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var last error

	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		err := op(ctx)

		if err == nil {
			return nil
		}

		if r.policy.Retryable == nil || !r.policy.Retryable(err) {
			return err
		}

		last = err

		if attempt == r.policy.MaxAttempts-1 {
			break
		}

		if err := r.sleep(ctx, r.Backoff(attempt)); err != nil {
			return err
		}
	}

	return last
}

// Backoff returns the delay after the given zero-based attempt:
// base, 2*base, 4*base, ... capped at MaxDelay.
func (r *Runner) Backoff(attempt int) time.Duration {
	delay := r.policy.BaseDelay

	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= r.policy.MaxDelay {
			return r.policy.MaxDelay
		}
	}

	if delay > r.policy.MaxDelay {
		delay = r.policy.MaxDelay
	}

	return delay
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
