// Package retry provides a small attempt combinator for calls whose
// failures split into "try again" and "give up" classes.
package retry

import "context"

// Do runs fn up to attempts times and returns the first success.
// A failure for which retriable reports false short-circuits immediately;
// otherwise the last error is returned after the final attempt. Attempts
// are sequential with no delay: the callers here retry model
// non-determinism, not rate limits. Context cancellation stops the loop.
func Do[T any](ctx context.Context, attempts int, fn func(ctx context.Context) (T, error), retriable func(error) bool) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retriable(err) {
			return zero, err
		}
	}
	return zero, lastErr
}
