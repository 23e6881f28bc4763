// Package ratelimit implements a process-local fixed-window request counter.
//
// State is in-memory and is NOT shared across process instances: under
// horizontal scaling each instance enforces its own independent limit.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const defaultMaxKeys = 5000

// Result is the outcome of a single Check call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key in fixed windows. The counter resets at
// discrete window boundaries rather than sliding; two requests racing a
// window rollover may both be admitted as first-in-window, which is an
// accepted imprecision of the fixed-window strategy. The per-key
// increment-or-reset itself is atomic under the limiter mutex.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	maxKeys int
}

func NewLimiter(maxKeys int) *Limiter {
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}
	return &Limiter{
		entries: make(map[string]*entry),
		maxKeys: maxKeys,
	}
}

// Check records a request for key against a ceiling of maxRequests per
// window. Rejected requests do not increment the counter, so hammering a
// limited key never extends its window.
func (l *Limiter) Check(key string, maxRequests int, window time.Duration) Result {
	return l.check(key, maxRequests, window, time.Now().UTC())
}

func (l *Limiter) check(key string, maxRequests int, window time.Duration, now time.Time) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(window)}
		l.entries[key] = e
		l.evictLocked(now)
		return Result{Allowed: true, Remaining: maxRequests - 1, ResetAt: e.resetAt}
	}

	if e.count >= maxRequests {
		return Result{Allowed: false, Remaining: 0, ResetAt: e.resetAt}
	}

	e.count++
	return Result{Allowed: true, Remaining: maxRequests - e.count, ResetAt: e.resetAt}
}

// evictLocked drops expired windows once the key map outgrows its cap.
// Lazy eviction keeps memory bounded without requiring the sweep goroutine.
func (l *Limiter) evictLocked(now time.Time) {
	if len(l.entries) <= l.maxKeys {
		return
	}
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}

// Start runs a periodic sweep of expired windows until ctx is cancelled.
// Correctness does not depend on it; it only bounds idle memory.
func (l *Limiter) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep(time.Now().UTC())
		}
	}
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
