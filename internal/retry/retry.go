// Package retry wraps fallible outbound operations with bounded retries and
// exponential backoff.
package retry

import (
	"context"
	"math"
	"time"
)

// Class categorizes a failure for retry purposes.
type Class int

const (
	// Transient failures (timeouts, connection resets, 5xx) are retried.
	Transient Class = iota
	// RateLimited failures are retried after an extra fixed delay.
	RateLimited
	// Fatal failures (malformed responses, hard 4xx) are never retried.
	Fatal
)

// Classifier maps an error to its retry class.
type Classifier func(error) Class

// Policy retries an operation with exponential backoff. Backoff before
// attempt k is min(MaxDelay, max(MinDelay, 2^k seconds)); rate-limited
// failures wait an additional RateLimitDelay on top.
type Policy struct {
	MaxAttempts    int
	MinDelay       time.Duration
	MaxDelay       time.Duration
	RateLimitDelay time.Duration
	Classify       Classifier
}

// Default returns the policy used by all source adapters: 3 attempts,
// backoff floor 2s, ceiling 16s, extra 30s after a rate-limit signal.
func Default(classify Classifier) Policy {
	return Policy{
		MaxAttempts:    3,
		MinDelay:       2 * time.Second,
		MaxDelay:       16 * time.Second,
		RateLimitDelay: 30 * time.Second,
		Classify:       classify,
	}
}

// Do runs op until it succeeds, fails fatally, or attempts are exhausted.
// The last error is returned to the caller; nothing is swallowed here.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		class := Transient
		if p.Classify != nil {
			class = p.Classify(lastErr)
		}
		if class == Fatal || attempt == p.MaxAttempts {
			return lastErr
		}

		wait := p.backoff(attempt)
		if class == RateLimited {
			wait += p.RateLimitDelay
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}

	return lastErr
}

// backoff returns the exponential delay before the next attempt.
func (p Policy) backoff(attempt int) time.Duration {
	d := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	if d < p.MinDelay {
		d = p.MinDelay
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
