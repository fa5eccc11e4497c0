package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between calls per identity. It delays
// callers, it never drops them. Construct one per process and pass it by
// reference to whoever needs gating.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall map[string]time.Time
	now      func() time.Time
}

func New(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		lastCall: make(map[string]time.Time),
		now:      time.Now,
	}
}

// NewWithClock is used by tests to control the wall clock.
func NewWithClock(interval time.Duration, now func() time.Time) *Limiter {
	l := New(interval)
	l.now = now
	return l
}

// Reserve returns how long the caller must wait before proceeding and
// records the reservation, so concurrent callers for the same identity
// queue behind each other.
func (l *Limiter) Reserve(identity string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	slot := now
	if last, ok := l.lastCall[identity]; ok {
		if next := last.Add(l.interval); next.After(now) {
			slot = next
		}
	}
	l.lastCall[identity] = slot
	return slot.Sub(now)
}

// Wait blocks until the identity's minimum interval has elapsed or the
// context is cancelled.
func (l *Limiter) Wait(ctx context.Context, identity string) error {
	wait := l.Reserve(identity)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
