package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DeusData/react-analyzer/internal/extract"
	"github.com/DeusData/react-analyzer/internal/jsconfig"
)

func parsedFile(path, ext string, lines int, imports ...extract.Import) extract.ParsedFile {
	name := path
	if j := lastSlash(path); j >= 0 {
		name = path[j+1:]
	}
	return extract.ParsedFile{
		Path:      path,
		Name:      name,
		Extension: ext,
		LineCount: lines,
		Imports:   imports,
	}
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"a/./b/../c", "a/c"},
		{"a/c", "a/c"},
		{"./a", "a"},
		{"a//b", "a/b"},
		{"a/../../b", "b"},
		{"", ""},
		{".", ""},
	}
	for _, c := range cases {
		got := Normalize(c.in)
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
		// Idempotency.
		if again := Normalize(got); again != got {
			t.Errorf("Normalize not idempotent: %q -> %q", got, again)
		}
	}
}

func TestBuildEndToEnd(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("a", "ts", 1, extract.Import{
			Source: "./b", FilePath: "a", Named: []string{"x"},
		}),
		parsedFile("b", "ts", 1),
	}
	g := Build(files, nil)

	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d: %+v", len(g.Nodes), g.Nodes)
	}
	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d: %+v", len(g.Edges), g.Edges)
	}

	e := g.Edges[0]
	if e.Name != "x" || e.IsDefault {
		t.Errorf("edge = %+v, want name=x is_default=false", e)
	}
	a, b := g.NodeByPath("a"), g.NodeByPath("b")
	if a == nil || b == nil {
		t.Fatal("missing node a or b")
	}
	if e.Source != b.ID || e.Target != a.ID {
		t.Errorf("edge direction wrong: %+v (a=%d b=%d)", e, a.ID, b.ID)
	}

	exports := AggregateExports(g)
	if len(exports) != 1 {
		t.Fatalf("expected 1 FileExports entry, got %+v", exports)
	}
	if exports[0].Source != "b" || len(exports[0].Exports) != 1 ||
		exports[0].Exports[0].Name != "x" || exports[0].Exports[0].Target != "a" {
		t.Errorf("exports = %+v", exports)
	}

	dead, unknown := FindDead(g, nil, t.TempDir())
	if len(dead) != 0 || len(unknown) != 0 {
		t.Errorf("dead=%v unknown=%v, want both empty", dead, unknown)
	}
}

func TestBuildWellFormed(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("src/a", "ts", 10,
			extract.Import{Source: "./b", FilePath: "src/a", Named: []string{"one", "two"}},
			extract.Import{Source: "react", FilePath: "src/a", IsDefault: true},
		),
		parsedFile("src/b", "ts", 20,
			extract.Import{Source: "../lib/c", FilePath: "src/b", Named: []string{"three"}},
		),
		parsedFile("lib/c", "ts", 30),
	}
	g := Build(files, nil)

	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if seen[n.Path] {
			t.Errorf("duplicate node path %q", n.Path)
		}
		seen[n.Path] = true
		if n.ID < 0 || n.ID >= len(g.Nodes) {
			t.Errorf("node id out of range: %+v", n)
		}
	}
	for _, e := range g.Edges {
		if e.Source < 0 || e.Source >= len(g.Nodes) {
			t.Errorf("edge %d has invalid source %d", e.ID, e.Source)
		}
		if e.Target < 0 || e.Target >= len(g.Nodes) {
			t.Errorf("edge %d has invalid target %d", e.ID, e.Target)
		}
	}
	// Arena order: node ids match slice positions.
	for i, n := range g.Nodes {
		if n.ID != i {
			t.Errorf("node %d has id %d", i, n.ID)
		}
	}
}

func TestBuildDeterministicIDs(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("a", "ts", 1, extract.Import{Source: "./b", FilePath: "a", Named: []string{"x"}}),
		parsedFile("b", "ts", 1, extract.Import{Source: "./c", FilePath: "b", Named: []string{"y"}}),
		parsedFile("c", "ts", 1),
	}
	g1 := Build(files, nil)
	g2 := Build(files, nil)
	for i := range g1.Nodes {
		if g1.Nodes[i] != g2.Nodes[i] && g1.Nodes[i].Path != g2.Nodes[i].Path {
			t.Fatalf("node order differs between runs")
		}
		if g1.Nodes[i].ID != g2.Nodes[i].ID {
			t.Fatalf("node ids differ between runs")
		}
	}
}

func TestBuildDefaultAndNamedEdges(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("app", "tsx", 5, extract.Import{
			Source: "./Button", FilePath: "app",
			Named: []string{"ButtonProps"}, IsDefault: true,
		}),
	}
	g := Build(files, nil)

	if len(g.Edges) != 2 {
		t.Fatalf("expected 2 edges (named + default), got %+v", g.Edges)
	}
	named, def := g.Edges[0], g.Edges[1]
	if named.Name != "ButtonProps" {
		t.Errorf("named edge = %+v", named)
	}
	if def.Name != "" || !def.IsDefault {
		t.Errorf("default edge = %+v", def)
	}
}

func TestBuildSideEffectImport(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("main", "ts", 2, extract.Import{Source: "core-js", FilePath: "main"}),
	}
	g := Build(files, nil)
	if len(g.Edges) != 0 {
		t.Errorf("side-effect import must not emit edges: %+v", g.Edges)
	}
	if g.NodeByPath("core-js") == nil {
		t.Error("side-effect import must still create the source node")
	}
}

func TestIndexCollapsing(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("Bar", "ts", 3, extract.Import{
			Source: "./Foo", FilePath: "Bar", Named: []string{"thing"},
		}),
		{Path: "Foo/index", Name: "Foo", Extension: "ts", LineCount: 7},
	}
	g := Build(files, nil)

	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes after collapsing, got %+v", g.Nodes)
	}
	if g.NodeByPath("Foo") != nil {
		t.Error("directory-keyed node must have been re-keyed")
	}
	n := g.NodeByPath("Foo/index")
	if n == nil {
		t.Fatal("missing Foo/index node")
	}
	if n.ID != 1 {
		t.Errorf("re-keying must preserve the original id, got %d", n.ID)
	}
	if n.LineCount == nil || *n.LineCount != 7 {
		t.Errorf("completion must fill line count, got %+v", n)
	}
	if g.Edges[0].Source != n.ID {
		t.Errorf("edge must keep pointing at the collapsed node: %+v", g.Edges[0])
	}
}

func TestIndexCollapsingIndexFirst(t *testing.T) {
	// The index file can also precede its importer ("Foo/index" sorts
	// before a root-level "index"); the directory import must then reuse
	// the existing node instead of creating a directory-keyed duplicate.
	files := []extract.ParsedFile{
		{Path: "Foo/index", Name: "Foo", Extension: "ts", LineCount: 7},
		parsedFile("index", "ts", 3, extract.Import{
			Source: "./Foo", FilePath: "index", Named: []string{"thing"},
		}),
	}
	g := Build(files, nil)

	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %+v", g.Nodes)
	}
	if g.NodeByPath("Foo") != nil {
		t.Error("directory import must not create a duplicate node")
	}
	n := g.NodeByPath("Foo/index")
	if n == nil {
		t.Fatal("missing Foo/index node")
	}
	if len(g.Edges) != 1 || g.Edges[0].Source != n.ID {
		t.Errorf("edge must point at the index node: %+v", g.Edges)
	}
}

func TestNodeCompletionFirstWriterWins(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("a", "ts", 1, extract.Import{Source: "./b", FilePath: "a", Named: []string{"x"}}),
		parsedFile("b", "ts", 42),
	}
	g := Build(files, nil)
	b := g.NodeByPath("b")
	if b == nil {
		t.Fatal("missing node b")
	}
	// b was first created as a placeholder by a's import, then completed.
	if b.LineCount == nil || *b.LineCount != 42 {
		t.Errorf("placeholder not completed: %+v", b)
	}
	if b.Extension == nil || *b.Extension != "ts" {
		t.Errorf("placeholder not completed: %+v", b)
	}
}

func TestAliasResolution(t *testing.T) {
	configs := []jsconfig.TypeScriptConfig{{
		FilePath: "tsconfig.json",
		CompilerOptions: &jsconfig.CompilerOptions{
			BaseURL: "src",
			Paths:   map[string][]string{"@app/*": {"app/*"}},
		},
	}}
	files := []extract.ParsedFile{
		parsedFile("src/main", "ts", 1, extract.Import{
			Source: "@app/utils", FilePath: "src/main", Named: []string{"helper"},
		}),
	}
	g := Build(files, configs)

	if g.NodeByPath("src/app/utils") == nil {
		t.Fatalf("alias not resolved, nodes: %+v", g.Nodes)
	}
}

func TestAliasLongestPrefixWins(t *testing.T) {
	configs := []jsconfig.TypeScriptConfig{{
		FilePath: "tsconfig.json",
		CompilerOptions: &jsconfig.CompilerOptions{
			Paths: map[string][]string{
				"@app/*":      {"app/*"},
				"@app/core/*": {"core/*"},
			},
		},
	}}
	files := []extract.ParsedFile{
		parsedFile("main", "ts", 1, extract.Import{
			Source: "@app/core/engine", FilePath: "main", Named: []string{"run"},
		}),
	}
	g := Build(files, configs)

	if g.NodeByPath("core/engine") == nil {
		t.Fatalf("longest alias prefix must win, nodes: %+v", g.Nodes)
	}
	if g.NodeByPath("app/core/engine") != nil {
		t.Error("shorter alias prefix applied instead")
	}
}

func TestAliasScopedToClosestConfig(t *testing.T) {
	configs := []jsconfig.TypeScriptConfig{
		{
			FilePath: "tsconfig.json",
			CompilerOptions: &jsconfig.CompilerOptions{
				Paths: map[string][]string{"@/*": {"rootsrc/*"}},
			},
		},
		{
			FilePath: "pkgA/tsconfig.json",
			CompilerOptions: &jsconfig.CompilerOptions{
				Paths: map[string][]string{"@/*": {"src/*"}},
			},
		},
	}
	files := []extract.ParsedFile{
		parsedFile("pkgA/src/x", "ts", 1, extract.Import{
			Source: "@/y", FilePath: "pkgA/src/x", Named: []string{"y"},
		}),
	}
	g := Build(files, configs)

	// pkgA's config wins: replacement is relative to pkgA, not the root.
	if g.NodeByPath("pkgA/src/y") == nil {
		t.Fatalf("closest config's alias must apply, nodes: %+v", g.Nodes)
	}
}

func TestBareImportLeftAsIs(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("main", "ts", 1, extract.Import{
			Source: "react", FilePath: "main", IsDefault: true,
		}),
	}
	g := Build(files, nil)
	if g.NodeByPath("react") == nil {
		t.Fatalf("bare import must keep its specifier: %+v", g.Nodes)
	}
}

func TestFindDeadClassification(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "util.ts"), []byte("export const u = 1;\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	files := []extract.ParsedFile{
		parsedFile("main", "ts", 1,
			extract.Import{Source: "./missing", FilePath: "main", Named: []string{"gone"}},
			extract.Import{Source: "core-js", FilePath: "main"},
		),
		parsedFile("util", "ts", 1),
	}
	g := Build(files, nil)

	dead, unknown := FindDead(g, []string{"core-js"}, root)
	if len(dead) != 1 || dead[0] != "util" {
		t.Errorf("dead = %v, want [util]", dead)
	}
	// main and missing are connected by the edge; core-js is a declared
	// dependency; util is on disk. Nothing else is unknown.
	if len(unknown) != 0 {
		t.Errorf("unknown = %v, want []", unknown)
	}

	// Drop the dependency declaration: the disconnected core-js node now
	// resolves to nothing on disk and becomes an unknown import.
	_, unknown = FindDead(g, nil, root)
	if len(unknown) != 1 || unknown[0] != "core-js" {
		t.Errorf("unknown = %v, want [core-js]", unknown)
	}
}

func TestFindDeadUnknownImport(t *testing.T) {
	files := []extract.ParsedFile{
		parsedFile("main", "ts", 1, extract.Import{Source: "./missing", FilePath: "main"}),
	}
	g := Build(files, nil)

	_, unknown := FindDead(g, nil, t.TempDir())
	if len(unknown) != 1 || unknown[0] != "missing" {
		t.Errorf("unknown = %v, want [missing]", unknown)
	}
}

func TestClassificationExhaustiveAndDisjoint(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "orphan.ts"), []byte("x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	files := []extract.ParsedFile{
		parsedFile("main", "ts", 1, extract.Import{Source: "./lib", FilePath: "main", Named: []string{"l"}}),
		parsedFile("lib", "ts", 1, extract.Import{Source: "lodash", FilePath: "lib"}),
		parsedFile("orphan", "ts", 1),
		{Path: "ghost", Name: "ghost"},
	}
	g := Build(files, nil)
	deps := []string{"lodash"}
	dead, unknown := FindDead(g, deps, root)

	deadSet := toSet(dead)
	unknownSet := toSet(unknown)
	connected := make(map[int]bool)
	for _, e := range g.Edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}
	depSet := map[string]bool{"lodash": true}

	for _, n := range g.Nodes {
		buckets := 0
		if connected[n.ID] {
			buckets++
		} else if isDependency(n.Path, depSet) {
			buckets++
		}
		if deadSet[n.Path] {
			buckets++
		}
		if unknownSet[n.Path] {
			buckets++
		}
		if buckets != 1 {
			t.Errorf("node %q is in %d buckets, want exactly 1", n.Path, buckets)
		}
	}
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, s := range list {
		set[s] = true
	}
	return set
}

func TestCrossReference(t *testing.T) {
	pkgs := []jsconfig.PackageJSON{{
		Dependencies:    map[string]string{"lodash": "^4.0.0", "@scope/pkg": "^1.0.0"},
		DevDependencies: map[string]string{"jest": "^29.0.0"},
		FilePath:        "package.json",
	}}
	files := []extract.ParsedFile{
		parsedFile("a", "ts", 1,
			extract.Import{Source: "lodash", FilePath: "a", IsDefault: true},
			extract.Import{Source: "lodash/debounce", FilePath: "a", IsDefault: true},
			extract.Import{Source: "@scope/pkg/sub", FilePath: "a", Named: []string{"s"}},
			extract.Import{Source: "./local", FilePath: "a", Named: []string{"l"}},
			extract.Import{Source: "unknown-pkg", FilePath: "a", IsDefault: true},
		),
	}

	usage := CrossReference(files, pkgs)
	if usage["lodash"] != 2 {
		t.Errorf("lodash = %d, want 2", usage["lodash"])
	}
	if usage["@scope/pkg"] != 1 {
		t.Errorf("@scope/pkg = %d, want 1", usage["@scope/pkg"])
	}
	if usage["jest"] != 0 {
		t.Errorf("jest = %d, want 0 (declared but unused)", usage["jest"])
	}
	if _, ok := usage["unknown-pkg"]; ok {
		t.Error("undeclared packages must not appear in the usage map")
	}
	if _, ok := usage["./local"]; ok {
		t.Error("relative imports must not be counted")
	}
}
