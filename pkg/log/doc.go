/*
Package log provides structured logging for Hutch using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper functions
for common logging patterns. All logs include timestamps and support filtering
by severity level.

# Usage

Initialize once at startup, then derive component loggers:

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	logger := log.WithComponent("reconciler")
	logger.Info().Int("apps", n).Msg("Iteration complete")

# Log Levels

  - debug: absent endpoints, shard selection, per-record diffs
  - info:  iteration summaries, record writes and deletions
  - warn:  inventory fetch failures, skipped ticks
  - error: DNS gateway rejections, unexpected lookup failures

Level selection follows the degradation policy of the reconciler: outcomes
that are normal and frequent (an app with no master endpoint yet) log at
debug, while anything that indicates a misbehaving collaborator logs at warn
or error.

# Output Formats

JSON output is intended for production; console output (the default) is
human-readable for development:

	{"level":"info","component":"reconciler","apps":12,"time":"2024-01-15T10:30:00Z","message":"Iteration complete"}

	2024-01-15T10:30:00Z INF Iteration complete apps=12 component=reconciler
*/
package log
