package reconciler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObserveStartsTracking(t *testing.T) {
	g := newGraceTracker(5 * time.Minute)
	now := time.Now()

	first, expired := g.Observe("app1", now)

	assert.True(t, first)
	assert.False(t, expired)
	assert.Equal(t, 1, g.Pending())
}

func TestObserveGraceBoundary(t *testing.T) {
	grace := 5 * time.Minute
	g := newGraceTracker(grace)
	start := time.Now()
	g.Observe("app1", start)

	// One millisecond short of the grace period: not expired
	_, expired := g.Observe("app1", start.Add(grace-time.Millisecond))
	assert.False(t, expired)

	// Exactly the grace period: expired
	_, expired = g.Observe("app1", start.Add(grace))
	assert.True(t, expired)

	// Beyond it: still expired
	_, expired = g.Observe("app1", start.Add(grace+time.Hour))
	assert.True(t, expired)
}

func TestObserveKeepsFirstMissingTime(t *testing.T) {
	grace := 5 * time.Minute
	g := newGraceTracker(grace)
	start := time.Now()

	g.Observe("app1", start)
	// Later observations must not reset the clock
	first, _ := g.Observe("app1", start.Add(time.Minute))
	assert.False(t, first)

	_, expired := g.Observe("app1", start.Add(grace))
	assert.True(t, expired)
}

func TestMarkSeenCancelsPendingDeletion(t *testing.T) {
	g := newGraceTracker(5 * time.Minute)
	now := time.Now()
	g.Observe("app1", now)

	assert.True(t, g.MarkSeen("app1"))
	assert.Equal(t, 0, g.Pending())

	// Cancellation leaves no partial-grace carryover: tracking restarts fresh
	first, expired := g.Observe("app1", now.Add(time.Hour))
	assert.True(t, first)
	assert.False(t, expired)
}

func TestMarkSeenWithoutPending(t *testing.T) {
	g := newGraceTracker(5 * time.Minute)
	assert.False(t, g.MarkSeen("app1"))
}

func TestClear(t *testing.T) {
	g := newGraceTracker(5 * time.Minute)
	g.Observe("app1", time.Now())

	g.Clear("app1")

	assert.Equal(t, 0, g.Pending())
	assert.Empty(t, g.PendingApps())
}
