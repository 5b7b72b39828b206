package store

import (
	"fmt"

	"github.com/DeusData/react-analyzer/internal/graph"
	"github.com/DeusData/react-analyzer/internal/report"
)

// SaveReport replaces a project's stored analysis with the given report
// document. The whole write runs in one transaction, so readers never see
// a half-replaced project.
func (s *Store) SaveReport(project, rootPath string, out *report.Output) error {
	return s.WithTransaction(func(tx *Store) error {
		if err := tx.UpsertProject(project, rootPath); err != nil {
			return fmt.Errorf("upsert project: %w", err)
		}
		for _, table := range []string{"nodes", "edges", "findings", "dependencies", "summaries"} {
			if _, err := tx.q.Exec("DELETE FROM "+table+" WHERE project=?", project); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for _, n := range out.ImportGraph.Nodes {
			if _, err := tx.q.Exec(`
				INSERT INTO nodes (project, id, path, file_name, extension, line_count)
				VALUES (?, ?, ?, ?, ?, ?)`,
				project, n.ID, n.Path, n.FileName, n.Extension, n.LineCount); err != nil {
				return fmt.Errorf("insert node %s: %w", n.Path, err)
			}
		}
		for _, e := range out.ImportGraph.Edges {
			if _, err := tx.q.Exec(`
				INSERT INTO edges (project, id, source, target, is_default, name)
				VALUES (?, ?, ?, ?, ?, ?)`,
				project, e.ID, e.Source, e.Target, e.IsDefault, e.Name); err != nil {
				return fmt.Errorf("insert edge %d: %w", e.ID, err)
			}
		}
		for _, path := range out.DeadFiles {
			if _, err := tx.q.Exec(
				"INSERT INTO findings (project, kind, path) VALUES (?, 'dead', ?)",
				project, path); err != nil {
				return fmt.Errorf("insert dead finding: %w", err)
			}
		}
		for _, path := range out.UnknownImports {
			if _, err := tx.q.Exec(
				"INSERT INTO findings (project, kind, path) VALUES (?, 'unknown', ?)",
				project, path); err != nil {
				return fmt.Errorf("insert unknown finding: %w", err)
			}
		}
		for name, count := range out.PackageJSON.Dependencies {
			if _, err := tx.q.Exec(
				"INSERT INTO dependencies (project, name, usage_count) VALUES (?, ?, ?)",
				project, name, count); err != nil {
				return fmt.Errorf("insert dependency %s: %w", name, err)
			}
		}

		sum, tests := out.Summary, out.TestSummary
		if _, err := tx.q.Exec(`
			INSERT INTO summaries (project, line_count, import_count, file_count,
				unused_file_count, skipped_file_count,
				test_count, test_skipped_count, test_line_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			project, sum.LineCount, sum.ImportCount, sum.FileCount,
			sum.UnusedFileCount, sum.SkippedFileCount,
			tests.Count, tests.SkippedCount, tests.LineCount); err != nil {
			return fmt.Errorf("insert summary: %w", err)
		}
		return nil
	})
}

// GetSummary returns a project's stored summary and test summary.
func (s *Store) GetSummary(project string) (report.Summary, report.TestSummary, error) {
	var sum report.Summary
	var tests report.TestSummary
	err := s.q.QueryRow(`
		SELECT line_count, import_count, file_count, unused_file_count,
			skipped_file_count, test_count, test_skipped_count, test_line_count
		FROM summaries WHERE project=?`, project).
		Scan(&sum.LineCount, &sum.ImportCount, &sum.FileCount,
			&sum.UnusedFileCount, &sum.SkippedFileCount,
			&tests.Count, &tests.SkippedCount, &tests.LineCount)
	if err != nil {
		return sum, tests, fmt.Errorf("get summary for %s: %w", project, err)
	}
	return sum, tests, nil
}

// ListFindings returns a project's stored findings of one kind
// ("dead" or "unknown"), ordered by path.
func (s *Store) ListFindings(project, kind string) ([]string, error) {
	rows, err := s.q.Query(
		"SELECT path FROM findings WHERE project=? AND kind=? ORDER BY path",
		project, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s findings: %w", kind, err)
	}
	defer rows.Close()
	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// FileExports returns the stored export relations of one file: every
// binding it exports and the file importing it, reconstructed from the
// edge list.
func (s *Store) FileExports(project, path string) ([]graph.Export, error) {
	rows, err := s.q.Query(`
		SELECT e.name, t.path, e.is_default
		FROM edges e
		JOIN nodes src ON src.project = e.project AND src.id = e.source
		JOIN nodes t ON t.project = e.project AND t.id = e.target
		WHERE e.project=? AND src.path=?
		ORDER BY e.id`, project, path)
	if err != nil {
		return nil, fmt.Errorf("file exports for %s: %w", path, err)
	}
	defer rows.Close()
	exports := []graph.Export{}
	for rows.Next() {
		var ex graph.Export
		if err := rows.Scan(&ex.Name, &ex.Target, &ex.IsDefault); err != nil {
			return nil, err
		}
		exports = append(exports, ex)
	}
	return exports, rows.Err()
}

// DependencyUsage returns a project's declared dependencies with their
// import counts.
func (s *Store) DependencyUsage(project string) (map[string]int, error) {
	rows, err := s.q.Query(
		"SELECT name, usage_count FROM dependencies WHERE project=?", project)
	if err != nil {
		return nil, fmt.Errorf("dependency usage: %w", err)
	}
	defer rows.Close()
	usage := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		usage[name] = count
	}
	return usage, rows.Err()
}
