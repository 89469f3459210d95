// Package retry provides the bounded-retry policy shared by model
// loading and question verification. No unbounded loops: every policy
// carries a fixed attempt ceiling.
package retry

import (
	"context"
	"time"
)

// BackoffFunc maps a zero-based attempt number to the delay before the
// next attempt.
type BackoffFunc func(attempt int) time.Duration

// Linear returns a backoff growing by base per attempt: base, 2*base,
// 3*base, ...
func Linear(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt+1) * base
	}
}

// None disables waiting between attempts. Useful in tests.
func None() BackoffFunc {
	return func(int) time.Duration { return 0 }
}

// Policy is a bounded retry schedule.
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
}

// Do runs fn until it succeeds, the attempt ceiling is reached, or ctx
// is done. The last error is returned on exhaustion.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == attempts-1 {
			break
		}
		if p.Backoff != nil {
			if d := p.Backoff(attempt); d > 0 {
				select {
				case <-time.After(d):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}
