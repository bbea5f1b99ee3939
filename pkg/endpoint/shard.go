package endpoint

const (
	// ShardCount is the number of lookup-service shards
	ShardCount = 4

	// defaultShardIndex handles identifiers whose leading character falls
	// outside the named ranges (digits, punctuation)
	defaultShardIndex = 1
)

// ShardIndex maps an application identifier to the lookup shard that is
// authoritative for it. The partition is a pure function of the lowercased
// leading character, split into four non-overlapping alphabet ranges, so the
// same identifier always routes to the same shard without any coordination.
func ShardIndex(appID string) int {
	if appID == "" {
		return defaultShardIndex
	}

	c := appID[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}

	switch {
	case c >= 'a' && c <= 'f':
		return 1
	case c >= 'g' && c <= 'm':
		return 2
	case c >= 'n' && c <= 's':
		return 3
	case c >= 't' && c <= 'z':
		return 4
	default:
		return defaultShardIndex
	}
}
