// Package ratelimit provides per-key request limiting.
//
// KeyedRateLimiter is a token bucket per key for smoothing general traffic.
// SlidingWindow caps the number of attempts per key inside a trailing window,
// which is what login throttling needs.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long a per-key bucket may sit unused before it is dropped.
const idleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter manages per-key token buckets.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed rate limiter.
// rps: requests per second allowed.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go krl.cleanup(time.Minute)

	return krl
}

// PerMinute creates a limiter allowing n requests per minute with a burst of n.
func PerMinute(n int) *KeyedRateLimiter {
	return New(float64(n)/60.0, n)
}

// Allow reports whether a request for key may proceed. It never blocks.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	krl.mu.Lock()
	b, ok := krl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.buckets[key] = b
	}
	b.lastSeen = time.Now()
	krl.mu.Unlock()

	return b.limiter.Allow()
}

// Len returns the number of tracked keys.
func (krl *KeyedRateLimiter) Len() int {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	return len(krl.buckets)
}

// Stop shuts down the cleanup goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

func (krl *KeyedRateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case now := <-ticker.C:
			krl.evictIdle(now)
		}
	}
}

func (krl *KeyedRateLimiter) evictIdle(now time.Time) {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	for key, b := range krl.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(krl.buckets, key)
		}
	}
}
