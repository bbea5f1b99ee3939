/*
Package endpoint resolves the currently-active network address of an
application through a partitioned lookup service.

# Partitioning

The lookup fleet is sharded by application name. Selecting the authoritative
shard requires no discovery step because the partition is a pure function of
the identifier's leading character:

	a-f → shard 1
	g-m → shard 2
	n-s → shard 3
	t-z → shard 4
	anything else → shard 1

Comparison is case-insensitive, ranges do not overlap, and every identifier
maps to exactly one shard, so repeated lookups for the same application
always hit the same shard.

# Lookup

The shard base URL is formatted from the zone's shard URL pattern and the
shard index, then queried:

	GET <shardBaseURL>/appips/<appID>
	→ {"status": "success", "data": {"ips": ["1.2.3.4"]}}

A 503 means the shard is still starting, a 404 means the app is unknown;
both are normal and log at debug. Any other failure logs at error. In every
failure case the resolver reports the endpoint as absent rather than
returning an error: the reconciliation loop degrades by skipping the app for
one iteration, and the next tick retries naturally.
*/
package endpoint
