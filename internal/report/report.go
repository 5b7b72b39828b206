package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DeusData/react-analyzer/internal/graph"
	"github.com/DeusData/react-analyzer/internal/pipeline"
)

// Output is the top-level report document.
type Output struct {
	ImportGraph    *graph.ImportGraph  `json:"import_graph"`
	DeadFiles      []string            `json:"dead_files"`
	UnknownImports []string            `json:"unknown_imports"`
	Exports        []graph.FileExports `json:"exports"`
	Summary        Summary             `json:"summary"`
	PackageJSON    PackageUsage        `json:"package_json"`
	TestSummary    TestSummary         `json:"test_summary"`
}

// Summary aggregates per-file counts across the whole run.
type Summary struct {
	LineCount        int `json:"line_count"`
	ImportCount      int `json:"import_count"`
	FileCount        int `json:"file_count"`
	UnusedFileCount  int `json:"unused_file_count"`
	SkippedFileCount int `json:"skipped_file_count"`
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"Total Files:     %d\nTotal Lines:     %d\nTotal Imports:   %d\nDead Files:      %d\nSkipped Files:   %d",
		s.FileCount, s.LineCount, s.ImportCount, s.UnusedFileCount, s.SkippedFileCount)
}

// TestSummary aggregates counts over discovered test files.
type TestSummary struct {
	Count        int `json:"count"`
	SkippedCount int `json:"skipped_count"`
	LineCount    int `json:"line_count"`
}

func (s TestSummary) String() string {
	return fmt.Sprintf(
		"Total Tests:     %d\nSkipped Tests:   %d\nTotal Lines:     %d",
		s.Count, s.SkippedCount, s.LineCount)
}

// PackageUsage maps each declared dependency to its import count.
type PackageUsage struct {
	Dependencies map[string]int `json:"dependencies"`
}

// FromResult assembles the report document from a finished analysis run.
func FromResult(r *pipeline.Result) *Output {
	summary := Summary{
		FileCount:        len(r.Files),
		UnusedFileCount:  len(r.DeadFiles),
		SkippedFileCount: r.SkippedFiles,
	}
	for _, f := range r.Files {
		summary.LineCount += f.LineCount
		summary.ImportCount += len(f.Imports)
	}

	var tests TestSummary
	for _, tf := range r.TestFiles {
		tests.Count += tf.TestCount
		tests.SkippedCount += tf.SkippedTestCount
		tests.LineCount += tf.LineCount
	}

	usage := r.DependencyUsage
	if usage == nil {
		usage = map[string]int{}
	}
	return &Output{
		ImportGraph:    r.Graph,
		DeadFiles:      r.DeadFiles,
		UnknownImports: r.UnknownImports,
		Exports:        r.Exports,
		Summary:        summary,
		PackageJSON:    PackageUsage{Dependencies: usage},
		TestSummary:    tests,
	}
}

// WriteJSON serializes the report document.
func (o *Output) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}

// WriteFile writes the report document to path, creating parent
// directories as needed.
func (o *Output) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := o.WriteJSON(f); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
