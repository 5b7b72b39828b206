package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Querier abstracts *sql.DB and *sql.Tx so store methods work in both contexts.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store wraps a SQLite connection for analysis result storage.
type Store struct {
	db     *sql.DB
	q      Querier // active querier: db or tx
	dbPath string
}

// cacheDir returns the default cache directory for databases.
func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	dir := filepath.Join(home, ".cache", "react-analyzer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir cache: %w", err)
	}
	return dir, nil
}

// Open opens or creates the default analysis database.
func Open() (*Store, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, "analysis.db"))
}

// OpenPath opens a SQLite database at the given path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, dbPath: dbPath}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory SQLite database (for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	s := &Store{db: db, dbPath: ":memory:"}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// WithTransaction executes fn within a single SQLite transaction.
// The callback receives a transaction-scoped Store — all store methods
// called on txStore use the transaction. The receiver's q field is never
// mutated, so concurrent read-only callers are unaffected.
func (s *Store) WithTransaction(fn func(txStore *Store) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txStore := &Store{db: s.db, q: tx, dbPath: s.dbPath}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sql.DB (for advanced queries).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Now returns the current time in the format stored in timestamp columns.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		analyzed_at TEXT NOT NULL,
		root_path TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS nodes (
		project TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		path TEXT NOT NULL,
		file_name TEXT,
		extension TEXT,
		line_count INTEGER,
		PRIMARY KEY (project, id)
	);
	CREATE INDEX IF NOT EXISTS idx_nodes_path ON nodes(project, path);

	CREATE TABLE IF NOT EXISTS edges (
		project TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		source INTEGER NOT NULL,
		target INTEGER NOT NULL,
		is_default INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (project, id)
	);
	CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(project, source);

	CREATE TABLE IF NOT EXISTS findings (
		project TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
		kind TEXT NOT NULL CHECK (kind IN ('dead', 'unknown')),
		path TEXT NOT NULL,
		PRIMARY KEY (project, kind, path)
	);

	CREATE TABLE IF NOT EXISTS dependencies (
		project TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
		name TEXT NOT NULL,
		usage_count INTEGER NOT NULL,
		PRIMARY KEY (project, name)
	);

	CREATE TABLE IF NOT EXISTS summaries (
		project TEXT PRIMARY KEY REFERENCES projects(name) ON DELETE CASCADE,
		line_count INTEGER NOT NULL,
		import_count INTEGER NOT NULL,
		file_count INTEGER NOT NULL,
		unused_file_count INTEGER NOT NULL,
		skipped_file_count INTEGER NOT NULL,
		test_count INTEGER NOT NULL,
		test_skipped_count INTEGER NOT NULL,
		test_line_count INTEGER NOT NULL
	);
	`
	if _, err := s.q.Exec(schema); err != nil {
		return err
	}
	return nil
}
