package model

import (
	"sync"
	"time"
)

// FloodGuard is a cooldown window. Once armed, Allowed reports false until
// the window has elapsed.
type FloodGuard struct {
	mu    sync.Mutex
	until time.Time
}

// Allowed reports whether the window has elapsed at now.
func (g *FloodGuard) Allowed(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !now.Before(g.until)
}

// Arm starts a new window of length d at now. Non-positive d disables the guard.
func (g *FloodGuard) Arm(now time.Time, d time.Duration) {
	if d <= 0 {
		return
	}
	g.mu.Lock()
	g.until = now.Add(d)
	g.mu.Unlock()
}

// TryAcquire checks and arms the window in one step. It returns ok=false
// when the window at now has not elapsed. Otherwise the window is armed for
// d and release undoes that arming, unless a later Arm replaced it.
func (g *FloodGuard) TryAcquire(now time.Time, d time.Duration) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if now.Before(g.until) {
		return nil, false
	}
	if d <= 0 {
		return func() {}, true
	}

	prev := g.until
	reserved := now.Add(d)
	g.until = reserved
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.until.Equal(reserved) {
			g.until = prev
		}
	}, true
}
