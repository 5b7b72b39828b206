package jsconfig

import "strings"

// PathDistance counts the directory pops needed to make two slash paths
// equal: pop one trailing component from whichever path has more components
// (ties pop the second argument), add one, repeat. Direct parent/child are
// 1 apart, siblings 2 apart, so smaller distance means a more specific
// enclosing directory.
func PathDistance(a, b string) int {
	distance := 0
	for a != b {
		if componentCount(a) > componentCount(b) {
			a = pop(a)
		} else {
			b = pop(b)
		}
		distance++
	}
	return distance
}

// ClosestConfig selects the closest enclosing config for a file path: among
// configs whose directory is a component-wise prefix of the path, the one
// with the smallest path distance. Returns nil when no config encloses the
// path.
func ClosestConfig(configs []TypeScriptConfig, path string) *TypeScriptConfig {
	var closest *TypeScriptConfig
	closestDistance := 0
	for i := range configs {
		cfg := &configs[i]
		dir := cfg.Dir()
		if !isPathPrefix(dir, path) {
			continue
		}
		d := PathDistance(path, dir)
		if closest == nil || d < closestDistance {
			closest = cfg
			closestDistance = d
		}
	}
	return closest
}

// isPathPrefix reports whether prefix is a component-wise prefix of path.
// The empty prefix (scan root) encloses everything.
func isPathPrefix(prefix, path string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func componentCount(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, "/") + 1
}

func pop(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return ""
}
