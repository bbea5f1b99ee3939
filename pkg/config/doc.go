/*
Package config loads and validates Hutch's static configuration.

Configuration is a single YAML file selected with the --config flag. All
durations use Go duration syntax. Example:

	poll_interval: 60s
	grace_period: 5m
	inventory_url: https://directory.example.com
	prefixes:
	  - minecraft
	  - valheim
	zones:
	  - name: games.example.com
	    ttl: 60
	    shard_url_pattern: https://lookup-%d.example.com
	gateway:
	  url: https://dns-gw.example.com
	  enabled: true
	  cert_file: /etc/hutch/client.crt
	  key_file: /etc/hutch/client.key
	  ca_file: /etc/hutch/ca.crt
	listen_addr: ":8080"
	journal_path: /var/lib/hutch/journal.db
	log:
	  level: info
	  json: true

Missing optional fields are defaulted by ApplyDefaults; Validate rejects
configurations that would make the reconciler misbehave silently (no zones,
malformed shard patterns, an enabled gateway with no URL). A disabled or
credential-less gateway is a valid configuration: the service runs, serves
its HTTP surface, and performs no DNS mutations.
*/
package config
