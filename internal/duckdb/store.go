// Package duckdb persists conversion output for later querying.
// Converted records are written append-only with the Appender API; each
// conversion also logs a provenance row describing its input.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB database holding converted records and run
// provenance.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS converted_records (
		group_id VARCHAR,
		chrom VARCHAR,
		pos VARCHAR,
		id VARCHAR,
		ref VARCHAR,
		alt VARCHAR,
		qual VARCHAR,
		filter VARCHAR,
		info VARCHAR,
		format VARCHAR,
		samples VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversion_runs (
		input_file VARCHAR,
		input_size BIGINT,
		input_mtime TIMESTAMP,
		profile VARCHAR,
		tool_version VARCHAR,
		started_at TIMESTAMP,
		records BIGINT
	)`)
	return err
}
