package reconciler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cuemby/hutch/pkg/dnsgw"
	"github.com/cuemby/hutch/pkg/events"
	"github.com/cuemby/hutch/pkg/inventory"
	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/metrics"
	"github.com/cuemby/hutch/pkg/types"
	"github.com/rs/zerolog"
)

// InventoryLister fetches the full set of known application specifications
type InventoryLister interface {
	ListApplications(ctx context.Context) []types.AppSpec
}

// EndpointResolver resolves an application's currently-active addresses
type EndpointResolver interface {
	ResolveMasterEndpoint(ctx context.Context, appID string, zone types.ZoneConfig) ([]string, bool)
}

// RecordWriter mutates DNS through the gateway
type RecordWriter interface {
	Ready() bool
	Upsert(ctx context.Context, name string, ips []string, zone types.ZoneConfig) error
	Delete(ctx context.Context, name string, zone types.ZoneConfig) error
}

// Config holds the reconciler's settings
type Config struct {
	PollInterval time.Duration
	GracePeriod  time.Duration
	Zones        []types.ZoneConfig
	Prefixes     []string
}

// Status is the reconciler's externally visible state
type Status struct {
	Running          bool                 `json:"running"`
	GatewayReady     bool                 `json:"gateway_ready"`
	TrackedApps      int                  `json:"tracked_apps"`
	PendingDeletions int                  `json:"pending_deletions"`
	LastSeen         []string             `json:"last_seen"`
	PendingSince     map[string]time.Time `json:"pending_since,omitempty"`
	LastRun          time.Time            `json:"last_run"`
}

// Reconciler keeps DNS records synchronized with the live placement of
// direct-routed applications. It owns all process-lifetime mutable state
// (write cache, missing-since tracking, last-seen set); iterations are
// strictly serialized by the running guard.
type Reconciler struct {
	cfg       Config
	inventory InventoryLister
	resolver  EndpointResolver
	dns       RecordWriter
	broker    *events.Broker
	logger    zerolog.Logger

	runMu   sync.Mutex
	running bool

	state *stateStore
	grace *graceTracker

	seenMu   sync.RWMutex
	lastSeen map[string]struct{}
	lastRun  time.Time

	stopCh chan struct{}
}

// New creates a reconciler. The broker may be nil when no event consumers
// exist (tests).
func New(cfg Config, inv InventoryLister, resolver EndpointResolver, dns RecordWriter, broker *events.Broker) *Reconciler {
	return &Reconciler{
		cfg:       cfg,
		inventory: inv,
		resolver:  resolver,
		dns:       dns,
		broker:    broker,
		logger:    log.WithComponent("reconciler"),
		state:     newStateStore(),
		grace:     newGraceTracker(cfg.GracePeriod),
		lastSeen:  make(map[string]struct{}),
		stopCh:    make(chan struct{}),
	}
}

// Start begins the reconciliation loop
func (r *Reconciler) Start() {
	go r.run()
}

// Stop stops the reconciler. An iteration already in flight is not
// interrupted; the guard only prevents new ones from starting.
func (r *Reconciler) Stop() {
	close(r.stopCh)
}

// run is the main reconciliation loop
func (r *Reconciler) run() {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.TryRunOnce(context.Background())
		case <-r.stopCh:
			return
		}
	}
}

// TryRunOnce attempts a single iteration, honoring the mutual-exclusion
// guard shared by the timer and the manual trigger. If an iteration is
// already running the attempt is skipped entirely, never queued.
func (r *Reconciler) TryRunOnce(ctx context.Context) bool {
	if !r.tryAcquire() {
		r.logger.Warn().Msg("Iteration still running, tick skipped")
		metrics.SkippedTicksTotal.Inc()
		return false
	}
	defer r.release()

	r.reconcile(ctx)
	return true
}

// Running reports whether an iteration is currently in progress
func (r *Reconciler) Running() bool {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	return r.running
}

func (r *Reconciler) tryAcquire() bool {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Reconciler) release() {
	r.runMu.Lock()
	r.running = false
	r.runMu.Unlock()
}

// reconcile performs one iteration
func (r *Reconciler) reconcile(ctx context.Context) {
	// A panic anywhere in an iteration must not kill the timer loop
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Interface("panic", p).Msg("Iteration panicked")
		}
	}()

	if !r.dns.Ready() {
		r.logger.Warn().Msg("DNS gateway not ready, skipping iteration")
		return
	}

	timer := metrics.NewTimer()

	apps := r.inventory.ListApplications(ctx)
	if len(apps) == 0 {
		// Far more likely a fetch failure than a real mass removal, so
		// removal detection is skipped as well
		r.logger.Warn().Msg("Empty inventory fetch, skipping iteration")
		metrics.EmptyInventoryTotal.Inc()
		return
	}

	matched := inventory.FilterGameApps(apps, r.cfg.Prefixes)

	observed := make(map[string]struct{}, len(matched))
	updates := 0
	for _, app := range matched {
		observed[app.Name] = struct{}{}
		if r.grace.MarkSeen(app.Name) {
			r.logger.Info().Str("app", app.Name).Msg("App reappeared, pending deletion cancelled")
			r.publish(events.New(events.EventAppReturned, app.Name))
		}
		updates += r.reconcileApp(ctx, app.Name)
	}

	r.processRemovals(ctx, r.removedSet(observed), time.Now())
	r.replaceLastSeen(observed)

	metrics.TrackedApps.Set(float64(r.state.Len()))
	metrics.PendingDeletions.Set(float64(r.grace.Pending()))
	metrics.IterationsTotal.Inc()
	timer.ObserveDuration(metrics.IterationDuration)

	r.logger.Info().
		Int("apps", len(matched)).
		Int("zone_updates", updates).
		Dur("elapsed", timer.Duration()).
		Msg("Iteration complete")
}

// reconcileApp resolves the app's master endpoint and conditionally writes
// each zone, returning the number of zone updates performed. Per-zone
// failures are absorbed so one broken zone never blocks another.
func (r *Reconciler) reconcileApp(ctx context.Context, app string) int {
	updates := 0
	for _, zone := range r.cfg.Zones {
		ips, ok := r.resolver.ResolveMasterEndpoint(ctx, app, zone)
		if !ok {
			r.logger.Debug().Str("app", app).Str("zone", zone.Name).Msg("No master endpoint, skipping")
			continue
		}

		// Diff on the exact content that would be written
		normalized := make([]string, len(ips))
		for i, ip := range ips {
			normalized[i] = dnsgw.NormalizeIP(ip)
		}

		if !r.state.Changed(app, zone.Name, normalized) {
			continue
		}

		if err := r.dns.Upsert(ctx, app, normalized, zone); err != nil {
			r.logger.Error().Err(err).Str("app", app).Str("zone", zone.Name).Msg("Record write failed")
			metrics.DNSFailuresTotal.WithLabelValues(zone.Name).Inc()
			event := events.New(events.EventRecordWriteFailed, app)
			event.Zone = zone.Name
			event.IPs = normalized
			event.Message = err.Error()
			r.publish(event)
			continue
		}

		r.state.Record(app, zone.Name, normalized)
		metrics.DNSUpsertsTotal.WithLabelValues(zone.Name).Inc()
		updates++

		event := events.New(events.EventRecordUpdated, app)
		event.Zone = zone.Name
		event.IPs = normalized
		r.publish(event)
	}
	return updates
}

// processRemovals handles the set difference between the previous and
// current observed sets. Apps never successfully written are ignored; the
// rest enter (or progress through) the deletion grace period.
func (r *Reconciler) processRemovals(ctx context.Context, removed map[string]struct{}, now time.Time) {
	for app := range removed {
		if !r.state.Has(app) {
			continue
		}

		first, expired := r.grace.Observe(app, now)
		if first {
			r.logger.Info().Str("app", app).Dur("grace_period", r.cfg.GracePeriod).
				Msg("App missing, deletion grace period started")
			r.publish(events.New(events.EventAppMissing, app))
			continue
		}
		if !expired {
			continue
		}

		r.evict(ctx, app)
	}
}

// evict deletes the app's records from every configured zone and clears all
// local tracking. State is cleared even when some zone deletes fail:
// retrying forever would flood a persistently broken zone, and a later
// re-provisioning cycle re-establishes state if the app comes back.
func (r *Reconciler) evict(ctx context.Context, app string) {
	deleted := 0
	for _, zone := range r.cfg.Zones {
		if err := r.dns.Delete(ctx, app, zone); err != nil {
			r.logger.Error().Err(err).Str("app", app).Str("zone", zone.Name).Msg("Record delete failed")
			metrics.DNSFailuresTotal.WithLabelValues(zone.Name).Inc()
			event := events.New(events.EventRecordDeleteFailed, app)
			event.Zone = zone.Name
			event.Message = err.Error()
			r.publish(event)
			continue
		}
		metrics.DNSDeletesTotal.WithLabelValues(zone.Name).Inc()
		deleted++

		event := events.New(events.EventRecordDeleted, app)
		event.Zone = zone.Name
		r.publish(event)
	}

	r.state.Delete(app)
	r.grace.Clear(app)

	r.logger.Info().Str("app", app).Int("zones_deleted", deleted).Int("zones_total", len(r.cfg.Zones)).
		Msg("App evicted after grace period")
	r.publish(events.New(events.EventAppEvicted, app))
}

// removedSet computes previous last-seen minus the current observed set
func (r *Reconciler) removedSet(observed map[string]struct{}) map[string]struct{} {
	r.seenMu.RLock()
	defer r.seenMu.RUnlock()

	removed := make(map[string]struct{})
	for app := range r.lastSeen {
		if _, ok := observed[app]; !ok {
			removed[app] = struct{}{}
		}
	}
	return removed
}

// replaceLastSeen swaps in this iteration's observed set wholesale
func (r *Reconciler) replaceLastSeen(observed map[string]struct{}) {
	r.seenMu.Lock()
	defer r.seenMu.Unlock()

	r.lastSeen = observed
	r.lastRun = time.Now()
}

func (r *Reconciler) publish(event *events.Event) {
	if r.broker != nil {
		r.broker.Publish(event)
	}
}

// Status returns the reconciler's externally visible state
func (r *Reconciler) Status() Status {
	r.seenMu.RLock()
	seen := make([]string, 0, len(r.lastSeen))
	for app := range r.lastSeen {
		seen = append(seen, app)
	}
	lastRun := r.lastRun
	r.seenMu.RUnlock()
	sort.Strings(seen)

	return Status{
		Running:          r.Running(),
		GatewayReady:     r.dns.Ready(),
		TrackedApps:      r.state.Len(),
		PendingDeletions: r.grace.Pending(),
		LastSeen:         seen,
		PendingSince:     r.grace.PendingApps(),
		LastRun:          lastRun,
	}
}

// DNSState returns a snapshot of the write cache (app → zone → IPs)
func (r *Reconciler) DNSState() map[string]map[string][]string {
	return r.state.Snapshot()
}
