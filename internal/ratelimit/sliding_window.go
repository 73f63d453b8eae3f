package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Clock returns the current time. Tests substitute a controllable one.
type Clock func() time.Time

// Decision is the outcome of one limiter call.
type Decision struct {
	Allowed bool
	Limit   int
	// Count is the number of calls retained in the window, the current one
	// included.
	Count     int
	Remaining int
	// RetryAfter is how long until the window admits another call. Zero when
	// the call was allowed.
	RetryAfter time.Duration
}

// SlidingWindow is a log based sliding window limiter. Every call, admitted
// or not, is recorded under its key; a call is admitted when the number of
// calls recorded during the trailing window, itself included, does not
// exceed the limit.
//
// A single mutex covers the whole append/prune/count sequence so concurrent
// callers on one key never lose updates.
type SlidingWindow struct {
	mu   sync.Mutex
	logs map[string][]time.Time
	now  Clock
}

type Option func(*SlidingWindow)

func WithClock(c Clock) Option {
	return func(l *SlidingWindow) {
		if c != nil {
			l.now = c
		}
	}
}

func NewSlidingWindow(opts ...Option) *SlidingWindow {
	l := &SlidingWindow{
		logs: make(map[string][]time.Time),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether a call for key fits within limit calls per window.
func (l *SlidingWindow) Allow(key string, limit int, window time.Duration) bool {
	return l.Decide(key, limit, window).Allowed
}

// Decide is Allow with the counters needed for rate limit response headers.
// A non-positive window disables limiting and records nothing.
func (l *SlidingWindow) Decide(key string, limit int, window time.Duration) Decision {
	if window <= 0 {
		return Decision{Allowed: true, Limit: limit, Remaining: max(limit, 0)}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	ts := prune(append(l.logs[key], now), now.Add(-window))
	l.logs[key] = ts

	count := len(ts)
	d := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Count:     count,
		Remaining: max(limit-count, 0),
	}
	if !d.Allowed {
		d.RetryAfter = retryAfter(ts, limit, window, now)
	}
	return d
}

// retryAfter returns the time until enough entries leave the window for the
// next call to fit: the (count-limit)th oldest entry has to expire.
func retryAfter(ts []time.Time, limit int, window time.Duration, now time.Time) time.Duration {
	if limit <= 0 {
		return window
	}
	oldest := ts[len(ts)-limit]
	if wait := oldest.Add(window).Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// prune drops timestamps at or before cutoff, in place. Timestamps are
// appended in clock order so the retained tail stays sorted.
func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Sweep removes keys with no timestamp inside the trailing window and
// returns how many keys were dropped.
func (l *SlidingWindow) Sweep(window time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-window)
	removed := 0
	for key, ts := range l.logs {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(l.logs, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *SlidingWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.logs)
}

// StartJanitor runs Sweep every interval until ctx is done. onSweep, when
// non-nil, receives the number of removed keys and the number still tracked.
func (l *SlidingWindow) StartJanitor(ctx context.Context, every, window time.Duration, onSweep func(removed, tracked int)) {
	if every <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := l.Sweep(window)
				if onSweep != nil {
					onSweep(removed, l.Len())
				}
			}
		}
	}()
}
