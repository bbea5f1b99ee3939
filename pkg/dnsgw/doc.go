/*
Package dnsgw is the client for the DNS gateway service.

The gateway is the only component allowed to mutate DNS, and it requires
mutual TLS. The client certificate, key, and CA bundle are loaded exactly
once at construction; there is no rotation or reload path. When credentials
are missing or the gateway is disabled by configuration the client fails
closed: Ready reports false and every operation returns ErrNotReady, while
the rest of the service (health endpoints, reconciliation bookkeeping) keeps
running. This makes a credential problem a visible degraded state instead of
a crash loop.

# Operations

	POST   /api/v1/zones/<zone>/records              upsert (full-set replace)
	DELETE /api/v1/zones/<zone>/records/<name>/A     idempotent delete
	GET    /api/v1/zones/<zone>/records/<name>/A     current content

Upsert always submits the complete desired IP set; the gateway replaces the
record wholesale, so no merge logic exists on this side. Delete treats a 404
as success. Every other rejection is returned as an error carrying the
gateway's response body for diagnostics, and the caller decides how to
isolate the failure (the reconciler continues with other zones and apps).

# IP Normalization

Addresses arriving from the lookup service may carry a port suffix or IPv6
bracket notation ("10.0.0.1:31000", "[2001:db8::1]:31000"). NormalizeIP
strips both before submission, so record content is always bare IPs.
*/
package dnsgw
