package graph

import (
	"sort"
	"strings"

	"github.com/DeusData/react-analyzer/internal/extract"
	"github.com/DeusData/react-analyzer/internal/jsconfig"
)

// Build constructs the import graph from parsed files. Files are
// processed in input order and node/edge ids are assigned in processing
// order, so a fixed input order yields identical ids across runs.
func Build(files []extract.ParsedFile, configs []jsconfig.TypeScriptConfig) *ImportGraph {
	arena := newNodeArena()
	var edges []Edge

	for i := range files {
		file := &files[i]
		cfg := jsconfig.ClosestConfig(configs, file.Path)

		// Index collapsing: an earlier import of the parent directory may
		// have created a node keyed by the directory itself. Re-key it to
		// this file, keeping its id and recorded line count.
		if stem(file.Path) == "index" {
			if dir := parent(file.Path); dir != "" {
				arena.rekey(dir, file.Path)
			}
		}

		fileID := arena.complete(file.Path, file.Name, file.Extension, file.LineCount)

		for _, imp := range file.Imports {
			src := resolveSource(imp, cfg)
			// Index collapsing, other direction: the index file may already
			// have a node when its directory is imported.
			srcID, ok := arena.lookup(src)
			if !ok {
				srcID, ok = arena.lookup(src + "/index")
			}
			if !ok {
				srcID = arena.ensure(src)
			}
			for _, name := range imp.Named {
				edges = append(edges, Edge{
					ID:        len(edges),
					Source:    srcID,
					Target:    fileID,
					IsDefault: imp.IsDefault,
					Name:      name,
				})
			}
			if imp.IsDefault {
				edges = append(edges, Edge{
					ID:        len(edges),
					Source:    srcID,
					Target:    fileID,
					IsDefault: true,
					Name:      "",
				})
			}
		}
	}

	if edges == nil {
		edges = []Edge{}
	}
	return &ImportGraph{Nodes: arena.nodes, Edges: edges}
}

// resolveSource computes the canonical source key for an import: relative
// specifiers resolve against the importing file's directory, bare
// specifiers go through the alias table of the closest enclosing config,
// and anything left unmatched stays as written (a package name or an
// unresolvable path).
func resolveSource(imp extract.Import, cfg *jsconfig.TypeScriptConfig) string {
	src := imp.Source
	if strings.HasPrefix(src, ".") {
		src = Normalize(parent(imp.FilePath) + "/" + src)
	} else if replaced, ok := applyAlias(src, cfg); ok {
		src = replaced
	}
	return strings.TrimSuffix(src, "/")
}

// applyAlias substitutes the longest matching alias prefix. Patterns and
// their first replacement target are de-wildcarded (a trailing "*" is
// stripped); replacements are relative to the config's directory joined
// with its baseUrl, if declared.
func applyAlias(src string, cfg *jsconfig.TypeScriptConfig) (string, bool) {
	aliases := cfg.Aliases()
	if len(aliases) == 0 {
		return "", false
	}

	patterns := make([]string, 0, len(aliases))
	for pattern := range aliases {
		patterns = append(patterns, pattern)
	}
	// Longest de-wildcarded prefix wins; sorting also makes iteration
	// order over the alias map irrelevant.
	sort.Slice(patterns, func(i, j int) bool {
		pi := strings.TrimSuffix(patterns[i], "*")
		pj := strings.TrimSuffix(patterns[j], "*")
		if len(pi) != len(pj) {
			return len(pi) > len(pj)
		}
		return pi < pj
	})

	for _, pattern := range patterns {
		targets := aliases[pattern]
		if len(targets) == 0 {
			continue
		}
		prefix := strings.TrimSuffix(pattern, "*")
		replacement := strings.TrimSuffix(targets[0], "*")
		if !strings.HasPrefix(src, prefix) {
			continue
		}
		resolved := cfg.Dir()
		if base := cfg.BaseURL(); base != "" {
			resolved += "/" + base
		}
		resolved += "/" + replacement + strings.TrimPrefix(src, prefix)
		return Normalize(resolved), true
	}
	return "", false
}

func parent(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return ""
}

func stem(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
