/*
Package types defines the shared data structures used across Hutch.

These are plain data declarations with no behavior: application specifications
as reported by the network's directory service, zone configuration, and the
wire shapes exchanged with the DNS gateway.

# Application Specifications

An AppSpec is ephemeral: it is fetched fresh every reconciliation iteration
and never persisted. Two shapes exist in the wild:

	{"name": "minecraftsrv", "version": 3, "containerData": "g:/data"}

	{"name": "minecraftsrv", "version": 7, "compose": [
	  {"name": "mc", "containerData": "g:/data"},
	  {"name": "backup", "containerData": "/backup"}
	]}

The flags segment of containerData (everything before the first ':') carries
deployment mode markers. The 'g' flag marks single-active-instance operation,
which is what qualifies an application for direct DNS routing.

# Zones

ZoneConfig is static configuration. Zones are reconciled independently: a
failure writing one zone never blocks another, and the set of live records
may diverge between zones.
*/
package types
