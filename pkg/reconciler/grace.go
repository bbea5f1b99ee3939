package reconciler

import (
	"sync"
	"time"
)

// graceTracker records when an app was first observed missing and decides
// when the grace period has elapsed. Enrollment is the caller's concern:
// only apps with existing written state belong here.
type graceTracker struct {
	mu           sync.RWMutex
	gracePeriod  time.Duration
	missingSince map[string]time.Time
}

func newGraceTracker(gracePeriod time.Duration) *graceTracker {
	return &graceTracker{
		gracePeriod:  gracePeriod,
		missingSince: make(map[string]time.Time),
	}
}

// MarkSeen cancels any pending deletion for the app and reports whether one
// was pending. Reappearance always wins, with no partial-grace carryover.
func (g *graceTracker) MarkSeen(app string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, pending := g.missingSince[app]
	delete(g.missingSince, app)
	return pending
}

// Observe registers that the app is missing at time now. On the first
// observation tracking starts and no destructive action may follow this
// iteration. On subsequent observations expired reports whether the full
// grace period has elapsed.
func (g *graceTracker) Observe(app string, now time.Time) (first, expired bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	since, ok := g.missingSince[app]
	if !ok {
		g.missingSince[app] = now
		return true, false
	}
	return false, now.Sub(since) >= g.gracePeriod
}

// Clear removes tracking for the app after eviction completes
func (g *graceTracker) Clear(app string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.missingSince, app)
}

// Pending returns the number of apps inside the grace period
func (g *graceTracker) Pending() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.missingSince)
}

// PendingApps returns a copy of the missing-since map for the status surface
func (g *graceTracker) PendingApps() map[string]time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string]time.Time, len(g.missingSince))
	for app, since := range g.missingSince {
		out[app] = since
	}
	return out
}
