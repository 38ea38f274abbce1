// Package retry runs a failable call a bounded number of times with a
// linearly growing delay between attempts.
package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
)

// Policy bounds a retried call. MaxAttempts counts retries, so a call that
// never succeeds is invoked MaxAttempts+1 times.
type Policy struct {
	MaxAttempts uint
	BaseDelay   time.Duration
}

// Func is the retried operation.
type Func[T any] func(ctx context.Context) (T, error)

// LinearDelay waits base * n before retry n (1-based).
func LinearDelay(base time.Duration) retry.DelayTypeFunc {
	return func(n uint, _ error, _ *retry.Config) time.Duration {
		return base * time.Duration(n+1)
	}
}

// Do invokes call until it succeeds or the policy is exhausted, in which
// case the last error is returned. The wait between attempts is aborted
// when ctx is done. name is used for logging only.
func Do[T any](ctx context.Context, name string, policy Policy, call Func[T]) (T, error) {
	result, err := retry.DoWithData(
		func() (T, error) {
			return call(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(policy.MaxAttempts+1),
		retry.DelayType(LinearDelay(policy.BaseDelay)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Str("call", name).
				Uint("attempt", n+1).
				Uint("max_attempts", policy.MaxAttempts+1).
				Err(err).
				Msg("call failed, retrying")
		}),
	)
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
