package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Rapsssito/AnnotSV/internal/duckdb"
)

func runDB(args []string) int {
	fs := flag.NewFlagSet("db", flag.ExitOnError)

	var (
		dbPath  string
		groupID string
	)

	fs.StringVar(&dbPath, "db", "", "DuckDB database written by 'convert --db'")
	fs.StringVar(&groupID, "group", "", "Print the stored records of one variant group")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Inspect a conversion database.

Without --group, prints a summary: stored record count, the last
conversion run, and per-chromosome record counts.

Usage:
  variantconvert db [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  variantconvert db --db runs.duckdb
  variantconvert db --db runs.duckdb --group 1_100_200_DEL_1
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if dbPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --db is required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if _, err := os.Stat(dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open database %s: %v\n", dbPath, err)
		return ExitError
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return ExitError
	}
	defer store.Close()

	if groupID != "" {
		return printGroup(store, groupID)
	}
	return printSummary(store, dbPath)
}

func printGroup(store *duckdb.Store, groupID string) int {
	records, err := store.LookupByGroupID(groupID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	if len(records) == 0 {
		fmt.Fprintf(os.Stderr, "No records for variant group %q\n", groupID)
		return ExitError
	}

	for _, rec := range records {
		fields := []string{
			rec.Chrom, rec.Pos, rec.ID, rec.Ref, rec.Alt,
			rec.Qual, rec.Filter, rec.Info, rec.Format,
		}
		fields = append(fields, rec.Samples...)
		fmt.Println(strings.Join(fields, "\t"))
	}
	return ExitSuccess
}

func printSummary(store *duckdb.Store, dbPath string) int {
	count, err := store.CountRecords()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Printf("Database: %s\n", dbPath)
	fmt.Printf("  Records: %d\n", count)

	last, err := store.LastRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	if last != nil {
		fmt.Printf("\nLast conversion:\n")
		fmt.Printf("  Input:   %s (%d bytes)\n", last.InputFile, last.InputSize)
		fmt.Printf("  Profile: %s\n", last.Profile)
		fmt.Printf("  Version: %s\n", last.ToolVersion)
		fmt.Printf("  Started: %s\n", last.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("  Records: %d\n", last.Records)
	}

	counts, err := store.CountByChromosome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	if len(counts) > 0 {
		fmt.Printf("\nRecords by chromosome:\n")
		for _, c := range counts {
			fmt.Printf("  %-8s %d\n", c.Chrom, c.Count)
		}
	}

	return ExitSuccess
}
