package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow allows at most max attempts per key within any trailing window.
// Only accepted attempts are recorded, so a blocked key regains one attempt as
// soon as its oldest recorded attempt ages out. Keys with no attempts left in
// the window are swept at most once per window.
type SlidingWindow struct {
	mu        sync.Mutex
	attempts  map[string][]time.Time
	max       int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewSlidingWindow creates a limiter permitting max attempts per window.
func NewSlidingWindow(maxAttempts int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		attempts: make(map[string][]time.Time),
		max:      maxAttempts,
		window:   window,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (w *SlidingWindow) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}

// Allow records an attempt for key and reports whether it is within the limit.
// When the limit is exceeded it also returns how long until the oldest attempt expires.
func (w *SlidingWindow) Allow(key string) (bool, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if now.Sub(w.lastSweep) >= w.window {
		w.sweep(now)
	}
	recent := w.prune(key, now)

	if len(recent) >= w.max {
		return false, recent[0].Add(w.window).Sub(now)
	}

	w.attempts[key] = append(recent, now)
	return true, 0
}

// Len returns the number of keys with attempts on record.
func (w *SlidingWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.attempts)
}

// sweep prunes every key. Caller holds mu.
func (w *SlidingWindow) sweep(now time.Time) {
	for key := range w.attempts {
		w.prune(key, now)
	}
	w.lastSweep = now
}

// prune drops attempts that fell out of the window. Caller holds mu.
func (w *SlidingWindow) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-w.window)
	kept := w.attempts[key][:0]
	for _, at := range w.attempts[key] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(w.attempts, key)
		return nil
	}
	w.attempts[key] = kept
	return kept
}
