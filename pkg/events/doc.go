/*
Package events provides an in-process broker for reconciliation events.

The reconciler publishes an event for every DNS mutation and app lifecycle
transition (record written, record deleted, app gone missing, app returned,
app evicted after the grace period). Subscribers receive events over buffered
channels; the mutation journal is the primary subscriber and persists what it
receives.

Delivery is best-effort by construction. Publish never blocks the
reconciliation loop: if the broker buffer is full the event is dropped, and a
slow subscriber with a full channel is skipped for that event. Anything that
must be reliable belongs in the reconciler's own state, not here.
*/
package events
