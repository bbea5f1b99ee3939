package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Reconciliation loop metrics
	IterationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hutch_iterations_total",
			Help: "Total number of completed reconciliation iterations",
		},
	)

	SkippedTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hutch_skipped_ticks_total",
			Help: "Ticks skipped because an iteration was still running",
		},
	)

	EmptyInventoryTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hutch_empty_inventory_total",
			Help: "Iterations short-circuited by an empty inventory fetch",
		},
	)

	IterationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hutch_iteration_duration_seconds",
			Help:    "Reconciliation iteration duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Collaborator failure metrics
	InventoryFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hutch_inventory_failures_total",
			Help: "Failed inventory fetches (network, status, or envelope errors)",
		},
	)

	LookupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hutch_lookup_failures_total",
			Help: "Endpoint lookups that failed outright, excluding normal absence",
		},
	)

	// DNS mutation metrics
	DNSUpsertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hutch_dns_upserts_total",
			Help: "Total number of successful record writes by zone",
		},
		[]string{"zone"},
	)

	DNSDeletesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hutch_dns_deletes_total",
			Help: "Total number of successful record deletions by zone",
		},
		[]string{"zone"},
	)

	DNSFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hutch_dns_failures_total",
			Help: "Total number of rejected gateway operations by zone",
		},
		[]string{"zone"},
	)

	// Tracking gauges
	TrackedApps = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hutch_tracked_apps",
			Help: "Applications with at least one successfully written record",
		},
	)

	PendingDeletions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hutch_pending_deletions",
			Help: "Applications currently inside the deletion grace period",
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(IterationsTotal)
	prometheus.MustRegister(SkippedTicksTotal)
	prometheus.MustRegister(EmptyInventoryTotal)
	prometheus.MustRegister(IterationDuration)
	prometheus.MustRegister(InventoryFailuresTotal)
	prometheus.MustRegister(LookupFailuresTotal)
	prometheus.MustRegister(DNSUpsertsTotal)
	prometheus.MustRegister(DNSDeletesTotal)
	prometheus.MustRegister(DNSFailuresTotal)
	prometheus.MustRegister(TrackedApps)
	prometheus.MustRegister(PendingDeletions)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
