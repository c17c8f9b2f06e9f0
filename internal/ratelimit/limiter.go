package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Decision is the outcome of a rate-limit check. RetryAfter is whole seconds
// until the oldest counted request falls out of the window; it is zero when
// the request was allowed.
type Decision struct {
	Allowed    bool
	RetryAfter int
}

// Limiter enforces a per-user sliding-window request cap. Each check prunes
// timestamps older than the window, denies when the survivors already reach
// the cap, and records the new request otherwise. State is in-memory and
// best-effort: concurrent requests from one user serialize on a single mutex
// but the limit is not meant to be exact across restarts.
type Limiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	requests map[uint][]time.Time
}

func New(window time.Duration, max int) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 30
	}
	return &Limiter{
		window:   window,
		max:      max,
		requests: make(map[uint][]time.Time),
	}
}

func (l *Limiter) CheckAndRecord(userID uint, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := pruneOlderThan(l.requests[userID], now.Add(-l.window))

	if len(recent) >= l.max {
		l.requests[userID] = recent
		retryAfter := int(math.Ceil(recent[0].Add(l.window).Sub(now).Seconds()))
		return Decision{Allowed: false, RetryAfter: retryAfter}
	}

	l.requests[userID] = append(recent, now)
	return Decision{Allowed: true}
}

// SweepIdle drops users whose every recorded request has aged out of the
// window, and reports how many were removed.
func (l *Limiter) SweepIdle(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	removed := 0
	for userID, stamps := range l.requests {
		if len(pruneOlderThan(stamps, cutoff)) == 0 {
			delete(l.requests, userID)
			removed++
		}
	}
	return removed
}

func pruneOlderThan(stamps []time.Time, cutoff time.Time) []time.Time {
	kept := stamps[:0:0]
	for _, t := range stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
