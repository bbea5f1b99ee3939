package reconciler

import (
	"sort"
	"sync"
)

// stateStore caches the last IP set successfully written per (app, zone).
// It exists purely to suppress redundant gateway writes; DNS itself remains
// the source of truth. The cache is never pre-populated, so the first
// iteration after process start always writes.
type stateStore struct {
	mu      sync.RWMutex
	entries map[string]map[string][]string // app → zone → last written IPs
}

func newStateStore() *stateStore {
	return &stateStore{
		entries: make(map[string]map[string][]string),
	}
}

// sameIPSet compares two IP lists as unordered sets of equal cardinality and
// membership; array order must never cause a spurious update
func sameIPSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// Changed reports whether the current IP set differs from the cached one.
// Absence of a cached entry is always a change, forcing the first write.
func (s *stateStore) Changed(app, zone string, ips []string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	zones, ok := s.entries[app]
	if !ok {
		return true
	}
	cached, ok := zones[zone]
	if !ok {
		return true
	}
	return !sameIPSet(cached, ips)
}

// Record overwrites the cached entry after a successful write. It must never
// be called speculatively before the write succeeds.
func (s *stateStore) Record(app, zone string, ips []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zones, ok := s.entries[app]
	if !ok {
		zones = make(map[string][]string)
		s.entries[app] = zones
	}
	zones[zone] = append([]string(nil), ips...)
}

// Has reports whether the app has at least one successfully written record
func (s *stateStore) Has(app string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries[app]) > 0
}

// Delete removes all cached state for the app (every zone)
func (s *stateStore) Delete(app string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, app)
}

// Len returns the number of tracked apps
func (s *stateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Snapshot returns a deep copy of the cache for the status surface
func (s *stateStore) Snapshot() map[string]map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string][]string, len(s.entries))
	for app, zones := range s.entries {
		zc := make(map[string][]string, len(zones))
		for zone, ips := range zones {
			zc[zone] = append([]string(nil), ips...)
		}
		out[app] = zc
	}
	return out
}
