/*
Package reconciler is the control loop that keeps DNS records synchronized
with the live placement of direct-routed applications.

Placement is decided elsewhere; the reconciler only observes the network's
reported state and the routing authority's currently-active endpoints, and
corrects DNS to match. It is an idempotent, periodically self-correcting
reconciler, not a transactional system: a failed call is simply absent for
that iteration, and the loop itself is the retry mechanism.

# Architecture

One iteration, entered on a fixed timer or via the manual trigger:

	┌────────────────────────────────────────────────────────────┐
	│                 Reconciliation Iteration                   │
	│        (timer tick or POST /trigger, never both)           │
	└────────────────┬───────────────────────────────────────────┘
	                 │
	                 ▼
	        Fetch inventory ──── empty? ──→ log, stop (no state touched)
	                 │
	                 ▼
	        Classify game apps (single-active mode + name prefix)
	                 │
	                 ▼
	   For each app, for each zone:
	        resolve master endpoint ── absent? ──→ skip (debug)
	                 │
	                 ▼
	        write-cache diff ── unchanged? ──→ skip
	                 │
	                 ▼
	        gateway upsert ── failure? ──→ log, continue (cache untouched)
	                 │
	                 ▼
	        record in write cache
	                 │
	                 ▼
	   Process removals (previous last-seen − observed):
	        start grace tracking, or evict after grace expiry
	                 │
	                 ▼
	   Replace last-seen set, log summary

# Concurrency

Iterations are strictly serialized by a single running flag under a mutex.
A tick that fires while a run is in progress is skipped entirely and logged,
never queued; the manual trigger honors the same guard with no bypass. The
guard never interrupts an iteration already in flight. All mutable maps
(write cache, missing-since, last-seen) are owned by the Reconciler instance
and only mutated from within an iteration; the status surface reads them
through locked snapshots.

# Deletion Grace

Deleting a record is the only destructive action, so it is deliberately
slow. An app must have been written successfully at least once, then stay
continuously unobserved for the full grace period, before its records are
deleted from every zone. Reappearance at any point cancels the pending
deletion unconditionally. At expiry each zone gets exactly one delete
attempt; local state is then cleared regardless of per-zone outcomes, so a
persistently failing zone cannot cause an indefinite retry storm.
*/
package reconciler
