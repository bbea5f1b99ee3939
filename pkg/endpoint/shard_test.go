package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardIndexRanges(t *testing.T) {
	tests := []struct {
		name     string
		appID    string
		expected int
	}{
		{name: "start of first range", appID: "alpha", expected: 1},
		{name: "end of first range", appID: "foxtrot", expected: 1},
		{name: "start of second range", appID: "golf", expected: 2},
		{name: "end of second range", appID: "mike", expected: 2},
		{name: "start of third range", appID: "november", expected: 3},
		{name: "end of third range", appID: "sierra", expected: 3},
		{name: "start of fourth range", appID: "tango", expected: 4},
		{name: "end of fourth range", appID: "zulu", expected: 4},
		{name: "uppercase maps like lowercase", appID: "Minecraft-1", expected: 2},
		{name: "digit falls back to default", appID: "7days", expected: 1},
		{name: "punctuation falls back to default", appID: "_internal", expected: 1},
		{name: "empty identifier falls back to default", appID: "", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShardIndex(tt.appID))
		})
	}
}

// Every printable leading character must map to exactly one shard, and the
// mapping must be stable across calls.
func TestShardIndexTotalAndDeterministic(t *testing.T) {
	for c := byte(' '); c <= '~'; c++ {
		appID := string(c) + "app"
		idx := ShardIndex(appID)
		assert.GreaterOrEqual(t, idx, 1, "char %q", c)
		assert.LessOrEqual(t, idx, ShardCount, "char %q", c)
		assert.Equal(t, idx, ShardIndex(appID), "char %q not deterministic", c)
	}
}

func TestShardIndexCaseInsensitive(t *testing.T) {
	for c := byte('a'); c <= 'z'; c++ {
		lower := string(c) + "app"
		upper := string(c-'a'+'A') + "app"
		assert.Equal(t, ShardIndex(lower), ShardIndex(upper))
	}
}
