// Package ratelimit holds the in-process submission limiter.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count       int
	windowStart time.Time
}

// FixedWindow allows up to max events per key in each window. A window starts
// at the first event for a key and is not extended by later events.
type FixedWindow struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*entry
	now     func() time.Time
}

func NewFixedWindow(max int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		max:     max,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (l *FixedWindow) WithClock(now func() time.Time) *FixedWindow {
	l.now = now
	return l
}

// Allow records an event for ip and reports whether it is within the limit.
// An empty ip is never limited.
func (l *FixedWindow) Allow(ip string) bool {
	if ip == "" {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[ip]
	if !ok || now.Sub(e.windowStart) > l.window {
		l.entries[ip] = &entry{count: 1, windowStart: now}
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}

// Prune drops entries whose window elapsed before now.
func (l *FixedWindow) Prune(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, e := range l.entries {
		if now.Sub(e.windowStart) > l.window {
			delete(l.entries, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *FixedWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Run prunes every interval until ctx is done.
func (l *FixedWindow) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune(l.now())
		}
	}
}
