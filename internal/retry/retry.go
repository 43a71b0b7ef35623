// Package retry provides a bounded-retry combinator used wherever the
// service re-attempts an operation a fixed number of times (receipt number
// allocation, outbound function calls).
package retry

import (
	"context"
	"errors"
	"time"
)

// BackoffFunc returns how long to wait before the given 1-based attempt.
// Attempt 1 never waits.
type BackoffFunc func(attempt int) time.Duration

// None performs every attempt back to back.
func None(int) time.Duration { return 0 }

// Exponential doubles the base delay on each attempt: base, 2*base, 4*base…
func Exponential(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base << uint(attempt-2)
	}
}

// Do calls fn up to maxAttempts times, passing the 1-based attempt number.
// It stops on the first nil error. The last error is returned when all
// attempts fail; ctx cancellation aborts between attempts.
func Do(ctx context.Context, maxAttempts int, backoff BackoffFunc, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if wait := backoff(attempt); wait > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(wait):
				}
			}
		}
		if err := fn(attempt); err != nil {
			var stop *stopError
			if errors.As(err, &stop) {
				return stop.err
			}
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// Stop wraps err so Do returns it immediately, skipping remaining attempts.
func Stop(err error) error { return &stopError{err: err} }

type stopError struct{ err error }

func (s *stopError) Error() string { return s.err.Error() }
func (s *stopError) Unwrap() error { return s.err }
