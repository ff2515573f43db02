// Package ratelimit paces outbound adapter requests with randomized,
// tier-specific delays.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jonathan/job-aggregator/internal/types"
)

// Interval is the inclusive range a delay is drawn from.
type Interval struct {
	Min time.Duration
	Max time.Duration
}

// DefaultIntervals maps each scraping level to its delay range.
func DefaultIntervals() map[string]Interval {
	return map[string]Interval{
		types.LevelConservative: {Min: 10 * time.Second, Max: 15 * time.Second},
		types.LevelNormal:       {Min: 5 * time.Second, Max: 8 * time.Second},
		types.LevelAggressive:   {Min: 2 * time.Second, Max: 5 * time.Second},
	}
}

// Limiter suspends callers for a random duration within its tier's interval
// before each outbound request. Unknown tiers fall back to normal.
type Limiter struct {
	tier      string
	intervals map[string]Interval

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Limiter for the given tier using the default intervals.
func New(tier string) *Limiter {
	return NewWithIntervals(tier, DefaultIntervals())
}

// NewWithIntervals creates a Limiter with custom intervals. Deployments that
// need different pacing override the defaults here instead of patching the
// constants.
func NewWithIntervals(tier string, intervals map[string]Interval) *Limiter {
	return &Limiter{
		tier:      tier,
		intervals: intervals,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Tier returns the limiter's scraping level.
func (l *Limiter) Tier() string {
	return l.tier
}

// next draws a delay uniformly from the tier's inclusive interval.
func (l *Limiter) next() time.Duration {
	interval, ok := l.intervals[l.tier]
	if !ok {
		interval = l.intervals[types.LevelNormal]
	}

	d := interval.Min
	if span := interval.Max - interval.Min; span > 0 {
		l.mu.Lock()
		d += time.Duration(l.rng.Int63n(int64(span) + 1))
		l.mu.Unlock()
	}
	return d
}

// Delay blocks for a random duration within the tier's interval, returning
// early with the context error if the caller is cancelled.
func (l *Limiter) Delay(ctx context.Context) error {
	timer := time.NewTimer(l.next())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
