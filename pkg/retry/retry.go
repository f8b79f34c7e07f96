package retry

import (
	"context"
	"time"
)

// Do runs op up to attempts times with a fixed delay between failed tries.
// The last error is returned once the attempts are exhausted. A cancelled
// context cuts the loop short during the inter-try sleep.
func Do[T any](ctx context.Context, attempts int, delay time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		var out T
		out, err = op(ctx)
		if err == nil {
			return out, nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, err
}
