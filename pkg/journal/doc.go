/*
Package journal persists reconciliation events to a local bbolt database.

Every DNS upsert, delete, write failure, and grace-tracker transition flows
through the event broker into the journal. Entries are keyed by timestamp so
a cursor walk yields chronological order, and the front door exposes the tail
via GET /journal.

The journal is strictly a diagnostic artifact. It is never read back into
the reconciliation cache: the cache invariant that the first iteration after
process start always writes must hold regardless of what the journal
contains. Losing or deleting the journal file costs history, not
correctness.
*/
package journal
