package store

import (
	"errors"
	"testing"

	"github.com/DeusData/react-analyzer/internal/extract"
	"github.com/DeusData/react-analyzer/internal/graph"
	"github.com/DeusData/react-analyzer/internal/pipeline"
	"github.com/DeusData/react-analyzer/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport() *report.Output {
	files := []extract.ParsedFile{
		{Path: "src/a", Name: "a", Extension: "ts", LineCount: 10, Imports: []extract.Import{
			{Source: "./b", FilePath: "src/a", Named: []string{"x"}},
		}},
		{Path: "src/b", Name: "b", Extension: "ts", LineCount: 20},
		{Path: "src/orphan", Name: "orphan", Extension: "ts", LineCount: 5},
	}
	g := graph.Build(files, nil)
	return report.FromResult(&pipeline.Result{
		Graph:           g,
		DeadFiles:       []string{"src/orphan"},
		UnknownImports:  []string{"missing"},
		Exports:         graph.AggregateExports(g),
		DependencyUsage: map[string]int{"react": 3, "jest": 0},
		Files:           files,
		TestFiles: []extract.TestFile{
			{Path: "src/a.test", LineCount: 8, TestCount: 2, SkippedTestCount: 1},
		},
		SkippedFiles: 1,
	})
}

func TestProjectLifecycle(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpsertProject("demo", "/tmp/demo"); err != nil {
		t.Fatalf("UpsertProject: %v", err)
	}
	p, err := s.GetProject("demo")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p.Name != "demo" || p.RootPath != "/tmp/demo" || p.AnalyzedAt == "" {
		t.Errorf("project = %+v", p)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("projects = %+v", projects)
	}

	if err := s.DeleteProject("demo"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := s.GetProject("demo"); err == nil {
		t.Error("expected error for deleted project")
	}
}

func TestSaveReportRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveReport("demo", "/tmp/demo", sampleReport()); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	sum, tests, err := s.GetSummary("demo")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if sum.FileCount != 3 || sum.LineCount != 35 || sum.ImportCount != 1 ||
		sum.UnusedFileCount != 1 || sum.SkippedFileCount != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if tests.Count != 2 || tests.SkippedCount != 1 || tests.LineCount != 8 {
		t.Errorf("test summary = %+v", tests)
	}

	dead, err := s.ListFindings("demo", "dead")
	if err != nil {
		t.Fatalf("ListFindings: %v", err)
	}
	if len(dead) != 1 || dead[0] != "src/orphan" {
		t.Errorf("dead = %v", dead)
	}
	unknown, err := s.ListFindings("demo", "unknown")
	if err != nil {
		t.Fatalf("ListFindings: %v", err)
	}
	if len(unknown) != 1 || unknown[0] != "missing" {
		t.Errorf("unknown = %v", unknown)
	}

	exports, err := s.FileExports("demo", "src/b")
	if err != nil {
		t.Fatalf("FileExports: %v", err)
	}
	if len(exports) != 1 || exports[0].Name != "x" || exports[0].Target != "src/a" {
		t.Errorf("exports = %+v", exports)
	}

	usage, err := s.DependencyUsage("demo")
	if err != nil {
		t.Fatalf("DependencyUsage: %v", err)
	}
	if usage["react"] != 3 || usage["jest"] != 0 {
		t.Errorf("usage = %v", usage)
	}
}

func TestSaveReportReplacesPreviousRun(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveReport("demo", "/tmp/demo", sampleReport()); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	// Second run with an empty project: everything from the first run
	// must be gone.
	empty := report.FromResult(&pipeline.Result{
		Graph:          &graph.ImportGraph{Nodes: []graph.Node{}, Edges: []graph.Edge{}},
		DeadFiles:      []string{},
		UnknownImports: []string{},
	})
	if err := s.SaveReport("demo", "/tmp/demo", empty); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	sum, _, err := s.GetSummary("demo")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if sum.FileCount != 0 {
		t.Errorf("summary not replaced: %+v", sum)
	}
	dead, err := s.ListFindings("demo", "dead")
	if err != nil {
		t.Fatal(err)
	}
	if len(dead) != 0 {
		t.Errorf("dead findings not replaced: %v", dead)
	}
}

func TestWithTransactionRollsBack(t *testing.T) {
	s := openTestStore(t)

	sentinel := errors.New("boom")
	err := s.WithTransaction(func(tx *Store) error {
		if err := tx.UpsertProject("demo", "/tmp/demo"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if _, err := s.GetProject("demo"); err == nil {
		t.Error("rolled-back project must not exist")
	}
}
