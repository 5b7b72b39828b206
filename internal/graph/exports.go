package graph

// Export is one binding a file provides to one importer.
type Export struct {
	Name      string `json:"name"`
	Target    string `json:"target"`
	IsDefault bool   `json:"is_default"`
}

// FileExports lists everything one source file exports and to whom.
type FileExports struct {
	Source  string   `json:"source"`
	Exports []Export `json:"exports"`
}

// AggregateExports inverts the edge list: one FileExports entry per
// distinct source node with at least one outgoing edge, in first-seen
// edge order. Files with zero importers produce no entry; liveness is
// the dead-file detector's call, not this one's.
func AggregateExports(g *ImportGraph) []FileExports {
	byID := make(map[int]string, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n.Path
	}

	index := make(map[int]int) // source id -> position in result
	result := []FileExports{}
	for _, e := range g.Edges {
		pos, ok := index[e.Source]
		if !ok {
			pos = len(result)
			index[e.Source] = pos
			result = append(result, FileExports{Source: byID[e.Source]})
		}
		result[pos].Exports = append(result[pos].Exports, Export{
			Name:      e.Name,
			Target:    byID[e.Target],
			IsDefault: e.IsDefault,
		})
	}
	return result
}
