package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/Rapsssito/AnnotSV/internal/output"
)

// InsertRecords batch-inserts converted records using the Appender API.
// Sample values are stored as a comma-joined list alongside the record.
func (s *Store) InsertRecords(records []output.Record) error {
	if len(records) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "converted_records")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range records {
		if err := appender.AppendRow(
			r.GroupID, r.Chrom, r.Pos, r.ID, r.Ref, r.Alt,
			r.Qual, r.Filter, r.Info, r.Format, strings.Join(r.Samples, ","),
		); err != nil {
			return fmt.Errorf("append record: %w", err)
		}
	}

	return appender.Flush()
}

// CountRecords returns the number of stored records.
func (s *Store) CountRecords() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM converted_records").Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// LookupByGroupID returns the stored records for one variant group.
func (s *Store) LookupByGroupID(groupID string) ([]output.Record, error) {
	rows, err := s.db.Query(`SELECT
		group_id, chrom, pos, id, ref, alt, qual, filter, info, format, samples
		FROM converted_records WHERE group_id=?`, groupID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []output.Record
	for rows.Next() {
		var rec output.Record
		var samples string
		if err := rows.Scan(
			&rec.GroupID, &rec.Chrom, &rec.Pos, &rec.ID, &rec.Ref, &rec.Alt,
			&rec.Qual, &rec.Filter, &rec.Info, &rec.Format, &samples,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if samples != "" {
			rec.Samples = strings.Split(samples, ",")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// ChromosomeCount pairs a chromosome with its stored record count.
type ChromosomeCount struct {
	Chrom string
	Count int64
}

// CountByChromosome returns per-chromosome record counts, largest first.
func (s *Store) CountByChromosome() ([]ChromosomeCount, error) {
	rows, err := s.db.Query(`SELECT chrom, COUNT(*) AS n
		FROM converted_records GROUP BY chrom ORDER BY n DESC, chrom`)
	if err != nil {
		return nil, fmt.Errorf("query chromosome counts: %w", err)
	}
	defer rows.Close()

	var counts []ChromosomeCount
	for rows.Next() {
		var c ChromosomeCount
		if err := rows.Scan(&c.Chrom, &c.Count); err != nil {
			return nil, fmt.Errorf("scan chromosome count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chromosome counts: %w", err)
	}
	return counts, nil
}

// ClearRecords removes all stored records.
func (s *Store) ClearRecords() error {
	_, err := s.db.Exec("DELETE FROM converted_records")
	return err
}
