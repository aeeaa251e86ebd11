// Package resilience decides which upstream failures may be retried and
// retries them when asked to.
package resilience

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Policy controls retries. The zero value makes a single attempt.
type Policy struct {
	// MaxAttempts counts the first try. Values below 2 disable retries.
	MaxAttempts int
	// Backoff is the delay before the first retry, doubled for each later one.
	Backoff time.Duration
	// MaxBackoff caps the delay.
	MaxBackoff time.Duration
	// OnRetry runs before each retry sleep.
	OnRetry func(attempt int, err error)
}

// NewPolicy returns a policy making maxAttempts attempts with the default
// backoff, logging each retry under operation.
func NewPolicy(maxAttempts int, operation string) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff:     500 * time.Millisecond,
		MaxBackoff:  10 * time.Second,
		OnRetry:     RetryLogger(operation),
	}
}

// Do runs fn until it succeeds, fails with an error IsTransient rejects, the
// attempts run out or ctx is done. The last error is returned.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := max(p.MaxAttempts, 1)

	var zero T
	var lastErr error
	for attempt := range attempts {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) || attempt == attempts-1 {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err)
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
	return zero, lastErr
}

// delay returns the sleep before retry number attempt+1, with ±25% jitter.
func (p Policy) delay(attempt int) time.Duration {
	d := p.Backoff << min(attempt, 30)
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	if d <= 0 {
		return 0
	}
	jitter := time.Duration((rand.Float64()*0.5 - 0.25) * float64(d))
	return d + jitter
}

// RetryLogger returns an OnRetry callback that logs each retry.
func RetryLogger(operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("retrying upstream request",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
