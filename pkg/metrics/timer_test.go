package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewTimer tests timer creation
func TestNewTimer(t *testing.T) {
	timer := NewTimer()

	if timer == nil {
		t.Fatal("NewTimer() returned nil")
	}

	if timer.start.IsZero() {
		t.Error("NewTimer() start time is zero")
	}

	// Verify start time is recent (within last second)
	if time.Since(timer.start) > time.Second {
		t.Error("NewTimer() start time is not recent")
	}
}

// TestTimerDuration tests duration measurement
func TestTimerDuration(t *testing.T) {
	timer := NewTimer()

	// Sleep for a known duration
	sleepDuration := 100 * time.Millisecond
	time.Sleep(sleepDuration)

	duration := timer.Duration()

	// Verify duration is at least the sleep duration (allowing small overhead)
	if duration < sleepDuration {
		t.Errorf("Timer.Duration() = %v, want >= %v", duration, sleepDuration)
	}
}

// TestTimerObserveDuration tests histogram observation
func TestTimerObserveDuration(t *testing.T) {
	// Create a test histogram
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_duration_seconds",
		Help:    "Test duration histogram",
		Buckets: prometheus.DefBuckets,
	})

	timer := NewTimer()
	time.Sleep(50 * time.Millisecond)

	// This should not panic
	timer.ObserveDuration(histogram)

	// Verify the timer recorded a non-zero duration
	duration := timer.Duration()
	if duration == 0 {
		t.Error("Timer.ObserveDuration() recorded zero duration")
	}
}

// TestTimerMultipleCalls tests that Duration can be called multiple times
func TestTimerMultipleCalls(t *testing.T) {
	timer := NewTimer()

	time.Sleep(50 * time.Millisecond)
	duration1 := timer.Duration()

	time.Sleep(50 * time.Millisecond)
	duration2 := timer.Duration()

	// Second call should be longer
	if duration2 <= duration1 {
		t.Errorf("Second Duration() call should be longer: first=%v, second=%v", duration1, duration2)
	}
}
