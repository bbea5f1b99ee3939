package inventory

import (
	"strings"

	"github.com/cuemby/hutch/pkg/types"
)

// singleActiveFlag marks single-active-instance operation in the flags
// segment of a container descriptor's containerData
const singleActiveFlag = 'g'

// hasModeFlag reports whether the flags segment of containerData (everything
// before the first ':') carries the given flag. A descriptor without a ':'
// has no flags segment.
func hasModeFlag(containerData string, flag rune) bool {
	idx := strings.IndexByte(containerData, ':')
	if idx < 0 {
		return false
	}
	return strings.ContainsRune(containerData[:idx], flag)
}

// IsSingleActive reports whether an application runs in single-active-instance
// mode. For composed applications any component carrying the marker qualifies
// the whole application.
func IsSingleActive(app types.AppSpec) bool {
	if len(app.Compose) == 0 {
		return hasModeFlag(app.ContainerData, singleActiveFlag)
	}
	for _, component := range app.Compose {
		if hasModeFlag(component.ContainerData, singleActiveFlag) {
			return true
		}
	}
	return false
}

// MatchesPrefix reports whether the application name starts with any of the
// configured prefixes, compared case-insensitively. Any match qualifies;
// order of the prefix list is irrelevant.
func MatchesPrefix(name string, prefixes []string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

// FilterGameApps returns the subset of applications that require direct DNS
// routing: single-active-instance mode and a qualifying name prefix
func FilterGameApps(apps []types.AppSpec, prefixes []string) []types.AppSpec {
	var matched []types.AppSpec
	for _, app := range apps {
		if !IsSingleActive(app) {
			continue
		}
		if !MatchesPrefix(app.Name, prefixes) {
			continue
		}
		matched = append(matched, app)
	}
	return matched
}
