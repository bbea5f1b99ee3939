/*
Package metrics defines Hutch's Prometheus metrics.

All collectors are package-level and registered at init, following the
convention that any package may increment them without wiring. The front
door serves them at GET /metrics.

# Metrics

	hutch_iterations_total            completed reconciliation iterations
	hutch_skipped_ticks_total         ticks skipped while a run was in progress
	hutch_empty_inventory_total       iterations short-circuited by empty fetch
	hutch_iteration_duration_seconds  iteration latency histogram
	hutch_inventory_failures_total    failed inventory fetches
	hutch_lookup_failures_total       outright lookup failures (not absence)
	hutch_dns_upserts_total{zone}     successful record writes
	hutch_dns_deletes_total{zone}     successful record deletions
	hutch_dns_failures_total{zone}    rejected gateway operations
	hutch_tracked_apps                apps with written records
	hutch_pending_deletions           apps inside the grace period

A healthy steady state shows iterations advancing with near-zero upserts
(the state-store diff suppresses redundant writes) and zero skipped ticks.
Rising skipped ticks mean iterations take longer than the poll interval;
rising failures point at the gateway or a misconfigured zone.
*/
package metrics
