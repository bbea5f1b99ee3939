package inventory

import (
	"testing"

	"github.com/cuemby/hutch/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestIsSingleActive(t *testing.T) {
	tests := []struct {
		name     string
		app      types.AppSpec
		expected bool
	}{
		{
			name:     "single container with g flag",
			app:      types.AppSpec{Name: "minecraft-1", ContainerData: "g:/data"},
			expected: true,
		},
		{
			name:     "single container with combined flags",
			app:      types.AppSpec{Name: "minecraft-1", ContainerData: "gb:/data"},
			expected: true,
		},
		{
			name:     "single container without flags",
			app:      types.AppSpec{Name: "minecraft-1", ContainerData: "/data"},
			expected: false,
		},
		{
			name:     "single container with other flag",
			app:      types.AppSpec{Name: "minecraft-1", ContainerData: "b:/data"},
			expected: false,
		},
		{
			name: "composed app with marked component",
			app: types.AppSpec{
				Name: "minecraft-1",
				Compose: []types.ComposeComponent{
					{Name: "backup", ContainerData: "/backup"},
					{Name: "server", ContainerData: "g:/data"},
				},
			},
			expected: true,
		},
		{
			name: "composed app without marked component",
			app: types.AppSpec{
				Name: "minecraft-1",
				Compose: []types.ComposeComponent{
					{Name: "server", ContainerData: "/data"},
					{Name: "backup", ContainerData: "b:/backup"},
				},
			},
			expected: false,
		},
		{
			name:     "url-ish container data is not a flags segment",
			app:      types.AppSpec{Name: "minecraft-1", ContainerData: "https://example.com/data"},
			expected: false,
		},
		{
			name:     "empty spec",
			app:      types.AppSpec{Name: "minecraft-1"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSingleActive(tt.app))
		})
	}
}

func TestMatchesPrefix(t *testing.T) {
	prefixes := []string{"minecraft", "valheim"}

	tests := []struct {
		name     string
		app      string
		expected bool
	}{
		{name: "exact prefix", app: "minecraft-1", expected: true},
		{name: "case insensitive app name", app: "Minecraft-1", expected: true},
		{name: "second prefix", app: "valheimsrv", expected: true},
		{name: "no match", app: "webserver", expected: false},
		{name: "prefix in the middle does not count", app: "my-minecraft", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesPrefix(tt.app, prefixes))
		})
	}
}

func TestMatchesPrefixCaseInsensitiveConfig(t *testing.T) {
	assert.True(t, MatchesPrefix("minecraft-1", []string{"MineCraft"}))
}

func TestFilterGameApps(t *testing.T) {
	apps := []types.AppSpec{
		{Name: "minecraft-1", ContainerData: "g:/data"}, // qualifies
		{Name: "minecraft-2", ContainerData: "/data"},   // mode missing
		{Name: "webserver", ContainerData: "g:/data"},   // prefix missing
		{Name: "Minecraft-3", Compose: []types.ComposeComponent{ // composed, qualifies
			{Name: "server", ContainerData: "g:/data"},
		}},
	}

	matched := FilterGameApps(apps, []string{"minecraft"})

	names := make([]string, 0, len(matched))
	for _, app := range matched {
		names = append(names, app.Name)
	}
	assert.Equal(t, []string{"minecraft-1", "Minecraft-3"}, names)
}

func TestFilterGameAppsEmptyPrefixList(t *testing.T) {
	apps := []types.AppSpec{{Name: "minecraft-1", ContainerData: "g:/data"}}
	assert.Empty(t, FilterGameApps(apps, nil))
}
