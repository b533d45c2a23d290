package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"time"
)

// ConversionRun is one conversion's provenance entry: what was converted,
// with which profile and tool version, and how much came out.
type ConversionRun struct {
	InputFile    string
	InputSize    int64
	InputModTime time.Time
	Profile      string
	ToolVersion  string
	StartedAt    time.Time
	Records      int64
}

// StatInput fills the input fingerprint from the file on disk. Inputs that
// cannot be stat'd (stdin, removed files) leave the fingerprint zeroed.
func (r *ConversionRun) StatInput() {
	info, err := os.Stat(r.InputFile)
	if err != nil {
		return
	}
	r.InputSize = info.Size()
	r.InputModTime = info.ModTime()
}

// RecordRun appends a provenance entry for a completed conversion.
func (s *Store) RecordRun(run ConversionRun) error {
	_, err := s.db.Exec(`INSERT INTO conversion_runs
		(input_file, input_size, input_mtime, profile, tool_version, started_at, records)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.InputFile, run.InputSize, run.InputModTime,
		run.Profile, run.ToolVersion, run.StartedAt, run.Records)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// LastRun returns the most recent provenance entry, or nil when the run
// log is empty.
func (s *Store) LastRun() (*ConversionRun, error) {
	row := s.db.QueryRow(`SELECT
		input_file, input_size, input_mtime, profile, tool_version, started_at, records
		FROM conversion_runs ORDER BY started_at DESC LIMIT 1`)

	var run ConversionRun
	err := row.Scan(&run.InputFile, &run.InputSize, &run.InputModTime,
		&run.Profile, &run.ToolVersion, &run.StartedAt, &run.Records)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	return &run, nil
}
