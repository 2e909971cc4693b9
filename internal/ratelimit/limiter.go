// Package ratelimit implements a per-client sliding-window request limiter.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits at most max requests per client within a sliding window.
// The zero value is not usable; construct with New.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the limiter's time source. Tests use this to step
// through the window deterministically.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New returns a Limiter admitting max requests per window for each client.
func New(max int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		clients: make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Admit records a request attempt for clientID and reports whether it is
// within the limit. When denied, retryAfter is the duration until the
// oldest in-window request ages out and a retry could succeed.
func (l *Limiter) Admit(clientID string) (ok bool, retryAfter time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := now.Add(-l.window)

	kept := l.clients[clientID][:0]
	for _, t := range l.clients[clientID] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.max {
		l.clients[clientID] = kept
		return false, kept[0].Sub(cutoff)
	}

	l.clients[clientID] = append(kept, now)
	return true, 0
}

// SetLimits replaces the admission parameters. Existing per-client request
// history is kept and re-evaluated against the new window on the next Admit.
func (l *Limiter) SetLimits(max int, window time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.max = max
	l.window = window
}

// Prune drops clients whose every recorded request has aged out of the
// window. The server runs this periodically so idle clients do not pin
// memory forever.
func (l *Limiter) Prune() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := now.Add(-l.window)

	for id, times := range l.clients {
		live := false
		for _, t := range times {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.clients, id)
		}
	}
}
