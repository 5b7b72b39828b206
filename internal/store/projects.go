package store

import "fmt"

// Project represents an analyzed project.
type Project struct {
	Name       string
	AnalyzedAt string
	RootPath   string
}

// UpsertProject creates or updates a project record.
func (s *Store) UpsertProject(name, rootPath string) error {
	_, err := s.q.Exec(`
		INSERT INTO projects (name, analyzed_at, root_path) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET analyzed_at=excluded.analyzed_at, root_path=excluded.root_path`,
		name, Now(), rootPath)
	return err
}

// GetProject returns a project by name.
func (s *Store) GetProject(name string) (*Project, error) {
	var p Project
	err := s.q.QueryRow("SELECT name, analyzed_at, root_path FROM projects WHERE name=?", name).
		Scan(&p.Name, &p.AnalyzedAt, &p.RootPath)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", name, err)
	}
	return &p, nil
}

// ListProjects returns all analyzed projects.
func (s *Store) ListProjects() ([]*Project, error) {
	rows, err := s.q.Query("SELECT name, analyzed_at, root_path FROM projects ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Name, &p.AnalyzedAt, &p.RootPath); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

// DeleteProject deletes a project and all associated data (CASCADE).
func (s *Store) DeleteProject(name string) error {
	_, err := s.q.Exec("DELETE FROM projects WHERE name=?", name)
	return err
}

// CountNodes returns the number of stored graph nodes for a project.
func (s *Store) CountNodes(project string) (int, error) {
	var n int
	err := s.q.QueryRow("SELECT COUNT(*) FROM nodes WHERE project=?", project).Scan(&n)
	return n, err
}

// CountEdges returns the number of stored graph edges for a project.
func (s *Store) CountEdges(project string) (int, error) {
	var n int
	err := s.q.QueryRow("SELECT COUNT(*) FROM edges WHERE project=?", project).Scan(&n)
	return n, err
}
