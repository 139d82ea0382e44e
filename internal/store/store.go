// Package store caches scan snapshots in a local SQLite database so
// repeated gate runs do not re-parse large snapshot files.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"planguard/internal/scan"
)

// Store provides persistence for scan snapshots in a SQLite database.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// OpenStore opens or creates the snapshot cache database at <dir>/cache.db.
func OpenStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "cache.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Set pragmas for performance
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if !dbExists {
		logger.Info("Creating snapshot cache database", "path", dbPath)
	}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return store, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// initializeSchema creates the snapshot tables.
func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshot_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			generated_at TEXT,
			tool TEXT,
			cached_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS elements (
			name TEXT PRIMARY KEY,
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			kind TEXT NOT NULL,
			parameters TEXT NOT NULL DEFAULT '[]',
			dependencies TEXT NOT NULL DEFAULT '[]',
			called_by TEXT NOT NULL DEFAULT '[]',
			complexity INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_elements_file ON elements(file);
		CREATE INDEX IF NOT EXISTS idx_elements_kind ON elements(kind);
	`

	if _, err := s.conn.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the location of the cache database file.
func (s *Store) Path() string {
	return s.dbPath
}

// SaveSnapshot replaces the cached snapshot with the given one.
func (s *Store) SaveSnapshot(snap *scan.Snapshot) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM elements"); err != nil {
		return fmt.Errorf("failed to clear elements: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snapshot_meta"); err != nil {
		return fmt.Errorf("failed to clear snapshot meta: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO elements (name, file, line, kind, parameters, dependencies, called_by, complexity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, el := range snap.Elements {
		params, err := json.Marshal(stringsOrEmpty(el.Parameters))
		if err != nil {
			return fmt.Errorf("failed to encode parameters for %s: %w", el.Name, err)
		}
		deps, err := json.Marshal(stringsOrEmpty(el.Dependencies))
		if err != nil {
			return fmt.Errorf("failed to encode dependencies for %s: %w", el.Name, err)
		}
		callers, err := json.Marshal(stringsOrEmpty(el.CalledBy))
		if err != nil {
			return fmt.Errorf("failed to encode callers for %s: %w", el.Name, err)
		}
		if _, err := stmt.Exec(el.Name, el.File, el.Line, string(el.Kind), string(params), string(deps), string(callers), el.Complexity); err != nil {
			return fmt.Errorf("failed to insert element %s: %w", el.Name, err)
		}
	}

	_, err = tx.Exec(
		"INSERT INTO snapshot_meta (id, generated_at, tool, cached_at) VALUES (1, ?, ?, ?)",
		snap.GeneratedAt, snap.Tool, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record snapshot meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.logger.Info("Cached snapshot", "elements", len(snap.Elements))
	return nil
}

// LoadSnapshot reads the cached snapshot. Returns (nil, nil) when no
// snapshot has been cached yet.
func (s *Store) LoadSnapshot() (*scan.Snapshot, error) {
	var generatedAt, tool sql.NullString
	err := s.conn.QueryRow("SELECT generated_at, tool FROM snapshot_meta WHERE id = 1").
		Scan(&generatedAt, &tool)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot meta: %w", err)
	}

	rows, err := s.conn.Query(`
		SELECT name, file, line, kind, parameters, dependencies, called_by, complexity
		FROM elements ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read elements: %w", err)
	}
	defer rows.Close()

	snap := &scan.Snapshot{
		GeneratedAt: generatedAt.String,
		Tool:        tool.String,
	}

	for rows.Next() {
		var el scan.Element
		var kind, params, deps, callers string
		if err := rows.Scan(&el.Name, &el.File, &el.Line, &kind, &params, &deps, &callers, &el.Complexity); err != nil {
			return nil, fmt.Errorf("failed to scan element row: %w", err)
		}
		el.Kind = scan.ElementKind(kind)
		if err := json.Unmarshal([]byte(params), &el.Parameters); err != nil {
			return nil, fmt.Errorf("corrupt parameters for %s: %w", el.Name, err)
		}
		if err := json.Unmarshal([]byte(deps), &el.Dependencies); err != nil {
			return nil, fmt.Errorf("corrupt dependencies for %s: %w", el.Name, err)
		}
		if err := json.Unmarshal([]byte(callers), &el.CalledBy); err != nil {
			return nil, fmt.Errorf("corrupt callers for %s: %w", el.Name, err)
		}
		snap.Elements = append(snap.Elements, el)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate elements: %w", err)
	}

	return snap, nil
}

// ElementCount returns the number of cached elements.
func (s *Store) ElementCount() (int, error) {
	var count int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM elements").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count elements: %w", err)
	}
	return count, nil
}

func stringsOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
