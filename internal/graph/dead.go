package graph

import (
	"os"
	"path/filepath"
	"strings"
)

// FindDead classifies every disconnected node: nodes whose path prefixes
// a declared dependency are external and skipped; otherwise the node is a
// dead file if it exists on disk under root, and an unknown import if it
// does not. Connected nodes (any edge endpoint) are never reported.
func FindDead(g *ImportGraph, dependencies []string, root string) (deadFiles, unknownImports []string) {
	depSet := make(map[string]bool, len(dependencies))
	for _, d := range dependencies {
		depSet[d] = true
	}

	connected := make(map[int]bool)
	for _, e := range g.Edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}

	deadFiles = []string{}
	unknownImports = []string{}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if connected[n.ID] {
			continue
		}
		if isDependency(n.Path, depSet) {
			continue
		}
		if fileExists(root, n) {
			deadFiles = append(deadFiles, n.Path)
		} else {
			unknownImports = append(unknownImports, n.Path)
		}
	}
	return deadFiles, unknownImports
}

// isDependency walks the path component by component; any accumulated
// prefix matching a declared name marks the node external. This covers
// scoped packages (@scope/pkg) and sub-path imports (lodash/debounce).
func isDependency(path string, depSet map[string]bool) bool {
	var prefix strings.Builder
	for _, c := range strings.Split(path, "/") {
		if prefix.Len() > 0 {
			prefix.WriteByte('/')
		}
		prefix.WriteString(c)
		if depSet[prefix.String()] {
			return true
		}
	}
	return false
}

// fileExists re-derives the on-disk path from the canonical key and the
// node's recorded extension (empty for placeholder nodes).
func fileExists(root string, n *Node) bool {
	path := filepath.Join(root, filepath.FromSlash(n.Path))
	if n.Extension != nil && *n.Extension != "" {
		path += "." + *n.Extension
	}
	_, err := os.Stat(path)
	return err == nil
}
