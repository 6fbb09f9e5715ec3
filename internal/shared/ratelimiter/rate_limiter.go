// Package ratelimiter paces outgoing calls to rate-limited providers.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Waiter blocks until the next call is allowed.
type Waiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows at most limit calls per interval (fixed window).
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // calls allowed per window
	interval  time.Duration // window length
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a RateLimiter allowing limit calls per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Wait reserves one call in the current window, or in the next one once the current window
// is exhausted, and sleeps until the reserved window opens. The lock is held only while
// reserving, so callers queued behind a sleeper still observe their own ctx.
// It returns ctx.Err() if ctx ends first; the reservation is then released.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rl.mu.Lock()
	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count >= rl.limit {
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count = 0
	}
	rl.count++
	window := rl.lastReset
	rl.mu.Unlock()

	d := window.Sub(now)
	if d <= 0 {
		return nil
	}

	slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", d)
	if err := rl.sleep(ctx, d); err != nil {
		rl.release(window)
		return err
	}
	return nil
}

// release gives back a reservation made in window.
func (rl *RateLimiter) release(window time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.lastReset.Equal(window) {
		return
	}
	if rl.count == 1 && window.After(rl.now()) {
		// sole reservation in a future window: restore the full current window
		rl.lastReset = window.Add(-rl.interval)
		rl.count = rl.limit
		return
	}
	if rl.count > 0 {
		rl.count--
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
