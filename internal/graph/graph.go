package graph

// Node is one vertex of the import graph. Path is the canonical key and
// unique across the graph; ID is the insertion-order index into the arena.
// A node created only as an edge endpoint carries nil metadata until its
// own file is parsed.
type Node struct {
	ID        int     `json:"id"`
	Path      string  `json:"path"`
	FileName  *string `json:"file_name,omitempty"`
	Extension *string `json:"extension,omitempty"`
	LineCount *int    `json:"line_count,omitempty"`
}

// Edge is one imported binding flowing from Source (the file imported
// from) to Target (the file doing the importing).
type Edge struct {
	ID        int    `json:"id"`
	Source    int    `json:"source"`
	Target    int    `json:"target"`
	IsDefault bool   `json:"is_default"`
	Name      string `json:"name"`
}

// ImportGraph is the canonical, deduplicated module graph. It is built in
// a single pass and immutable afterward; all downstream reports are
// read-only traversals.
type ImportGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeByPath returns the node with the given canonical key, or nil.
func (g *ImportGraph) NodeByPath(path string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].Path == path {
			return &g.Nodes[i]
		}
	}
	return nil
}

// nodeArena owns all nodes: a slice indexed by id plus a path lookup
// table. Ids are assigned at creation and never reused or reassigned.
type nodeArena struct {
	nodes  []Node
	byPath map[string]int
}

func newNodeArena() *nodeArena {
	return &nodeArena{byPath: make(map[string]int)}
}

// lookup returns the id for a path if a node exists.
func (a *nodeArena) lookup(path string) (int, bool) {
	id, ok := a.byPath[path]
	return id, ok
}

// ensure returns the id for a path, creating a metadata-less placeholder
// if the path is new.
func (a *nodeArena) ensure(path string) int {
	if id, ok := a.byPath[path]; ok {
		return id
	}
	id := len(a.nodes)
	a.nodes = append(a.nodes, Node{ID: id, Path: path})
	a.byPath[path] = id
	return id
}

// complete creates the node for a parsed file, or fills the nil fields of
// an existing placeholder. Completion is idempotent: the first writer
// wins, and neither id nor path ever change.
func (a *nodeArena) complete(path, fileName, extension string, lineCount int) int {
	id := a.ensure(path)
	n := &a.nodes[id]
	if n.FileName == nil {
		n.FileName = &fileName
	}
	if n.Extension == nil {
		n.Extension = &extension
	}
	if n.LineCount == nil {
		n.LineCount = &lineCount
	}
	return id
}

// rekey moves a node to a new path, preserving its id and any recorded
// line count. Used for index collapsing: a node keyed by a directory is
// re-keyed to dir/index once the real index file is parsed.
func (a *nodeArena) rekey(oldPath, newPath string) bool {
	id, ok := a.byPath[oldPath]
	if !ok {
		return false
	}
	if _, taken := a.byPath[newPath]; taken {
		return false
	}
	delete(a.byPath, oldPath)
	a.byPath[newPath] = id
	a.nodes[id].Path = newPath
	return true
}
