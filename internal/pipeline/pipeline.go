package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DeusData/react-analyzer/internal/discover"
	"github.com/DeusData/react-analyzer/internal/extract"
	"github.com/DeusData/react-analyzer/internal/graph"
	"github.com/DeusData/react-analyzer/internal/jsconfig"
)

// DefaultWorkers bounds the parallel parse pass.
const DefaultWorkers = 64

// Config holds everything a single analysis run needs.
type Config struct {
	Root        string
	Pattern     string
	Ignore      string
	TestPattern string
	Workers     int
}

// Result is the complete outcome of an analysis run: the import graph and
// every derived artifact, plus the raw parsed files for the report layer.
type Result struct {
	Root            string
	ProjectName     string
	Graph           *graph.ImportGraph
	DeadFiles       []string
	UnknownImports  []string
	Exports         []graph.FileExports
	Dependencies    []string
	DependencyUsage map[string]int
	Files           []extract.ParsedFile
	TestFiles       []extract.TestFile
	SkippedFiles    int
	Duration        time.Duration
}

// ProjectNameFromPath derives a project name from the analyzed root:
// its final path element.
func ProjectNameFromPath(absPath string) string {
	name := filepath.Base(filepath.Clean(absPath))
	if name == "/" || name == "." || name == "" {
		return "root"
	}
	return name
}

// Run executes the full analysis: discover files, load configs, parse
// sources in parallel, build the graph and derive dead files, unknown
// imports, export relations and dependency usage.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	started := time.Now()

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	slog.Info("pipeline.start", "path", root, "workers", workers)

	found, err := discover.Discover(ctx, root, &discover.Options{
		Pattern:     cfg.Pattern,
		Ignore:      cfg.Ignore,
		TestPattern: cfg.TestPattern,
	})
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	slog.Info("pipeline.discovered",
		"sources", len(found.Sources),
		"tests", len(found.Tests),
		"package_jsons", len(found.PackageJSONs),
		"tsconfigs", len(found.TSConfigs))

	// Config files are advisory: a malformed one is reported and the run
	// continues without it.
	packages, errs := jsconfig.LoadPackageJSONs(found.PackageJSONs, root)
	for _, e := range errs {
		slog.Warn("pipeline.package_json.err", "err", e)
	}
	configs, errs := jsconfig.LoadTSConfigs(found.TSConfigs, root)
	for _, e := range errs {
		slog.Warn("pipeline.tsconfig.err", "err", e)
	}

	files, skipped := parseSources(ctx, found.Sources, root, workers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slog.Info("pipeline.extracted",
		"files", len(files), "skipped", skipped, "dur", time.Since(started))

	// Graph ids are assigned in processing order; parallel collection
	// above is index-addressed and the sort here pins the order, so the
	// same tree always yields the same ids.
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	g := graph.Build(files, configs)
	dependencies := jsconfig.ListDependencies(packages)
	dead, unknown := graph.FindDead(g, dependencies, root)
	exports := graph.AggregateExports(g)
	usage := graph.CrossReference(files, packages)

	tests, testSkipped := parseTests(ctx, found.Tests, root, workers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	skipped += testSkipped
	sort.Slice(tests, func(i, j int) bool { return tests[i].Path < tests[j].Path })

	result := &Result{
		Root:            root,
		ProjectName:     ProjectNameFromPath(root),
		Graph:           g,
		DeadFiles:       dead,
		UnknownImports:  unknown,
		Exports:         exports,
		Dependencies:    dependencies,
		DependencyUsage: usage,
		Files:           files,
		TestFiles:       tests,
		SkippedFiles:    skipped,
		Duration:        time.Since(started),
	}
	slog.Info("pipeline.done",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"dead", len(dead),
		"unknown", len(unknown),
		"dur", result.Duration)
	return result, nil
}

// parseSources runs the extraction pass: CPU-bound, no shared state;
// each worker writes only its own slot.
func parseSources(ctx context.Context, sources []discover.FileInfo, root string, workers int) ([]extract.ParsedFile, int) {
	type parseResult struct {
		File *extract.ParsedFile
		Err  error
	}
	results := make([]parseResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range sources {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			file, err := extract.ParseFile(f.Path, root)
			results[i] = parseResult{File: file, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	files := make([]extract.ParsedFile, 0, len(sources))
	skipped := 0
	for i, r := range results {
		if r.Err != nil {
			slog.Warn("pipeline.extract.err", "path", sources[i].RelPath, "err", r.Err)
			skipped++
			continue
		}
		if r.File != nil {
			files = append(files, *r.File)
		}
	}
	return files, skipped
}

func parseTests(ctx context.Context, tests []discover.FileInfo, root string, workers int) ([]extract.TestFile, int) {
	type testResult struct {
		File *extract.TestFile
		Err  error
	}
	results := make([]testResult, len(tests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range tests {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			file, err := extract.ParseTestFile(f.Path, root)
			results[i] = testResult{File: file, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	files := make([]extract.TestFile, 0, len(tests))
	skipped := 0
	for i, r := range results {
		if r.Err != nil {
			slog.Warn("pipeline.test.err", "path", tests[i].RelPath, "err", r.Err)
			skipped++
			continue
		}
		if r.File != nil {
			files = append(files, *r.File)
		}
	}
	return files, skipped
}
