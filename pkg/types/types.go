package types

// AppSpec is an application specification as reported by the network's
// directory service. Older specs declare a single container inline; newer
// (composed) specs carry an ordered list of components instead.
type AppSpec struct {
	Name          string             `json:"name"`
	Version       int                `json:"version"`
	ContainerData string             `json:"containerData,omitempty"`
	Compose       []ComposeComponent `json:"compose,omitempty"`
}

// ComposeComponent is one component of a composed application spec
type ComposeComponent struct {
	Name          string `json:"name"`
	ContainerData string `json:"containerData"`
}

// ZoneConfig describes a DNS zone managed by the reconciler. Each zone has
// its own TTL and its own shard URL pattern for master endpoint lookups, so
// zones can be served by different lookup fleets.
type ZoneConfig struct {
	// Name is the DNS zone name (e.g. "app.runonflux.io")
	Name string `yaml:"name" json:"name"`

	// TTL is the record TTL in seconds for records written to this zone
	TTL int `yaml:"ttl" json:"ttl"`

	// ShardURLPattern is a printf pattern containing a single %d verb that
	// expands to the base URL of the lookup shard for that index
	// (e.g. "https://lookup-%d.example.com")
	ShardURLPattern string `yaml:"shard_url_pattern" json:"shard_url_pattern"`
}

// DNSRecord is an A record as exchanged with the DNS gateway
type DNSRecord struct {
	Name       string   `json:"name"`
	RecordType string   `json:"record_type"`
	Content    []string `json:"content"`
	TTL        int      `json:"ttl"`
}
