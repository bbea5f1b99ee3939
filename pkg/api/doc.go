/*
Package api is Hutch's front-door HTTP surface.

The front door is strictly an observer and trigger; it never mutates DNS
itself. Endpoints:

	GET  /health     liveness: 200 while the process is alive
	GET  /ready      readiness: 200 only when the gateway client is ready
	GET  /status     running flag, gateway readiness, tracked-app count,
	                 pending deletions, last-seen app list
	GET  /dns-state  write cache snapshot: app → zone → IP list
	GET  /journal    recent mutation journal entries (?limit=n, newest first)
	POST /trigger    attempt one manual iteration
	GET  /metrics    Prometheus metrics

/trigger shares the reconciler's mutual-exclusion guard with the timer: if
an iteration is in progress the trigger is rejected with 409, never queued.
An accepted trigger returns 202 immediately and the iteration runs in the
background.

Failing to bind the listener at startup is the one unrecoverable error in
the whole service; everything else degrades while the front door stays up.
*/
package api
