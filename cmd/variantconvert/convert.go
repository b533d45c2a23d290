package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Rapsssito/AnnotSV/internal/config"
	"github.com/Rapsssito/AnnotSV/internal/convert"
	"github.com/Rapsssito/AnnotSV/internal/duckdb"
	"github.com/Rapsssito/AnnotSV/internal/helpers"
	"github.com/Rapsssito/AnnotSV/internal/output"
)

func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	var (
		inputPath  string
		outputPath string
		configPath string
		dbPath     string
		verbosity  string
	)

	fs.StringVar(&inputPath, "input", "", "Input annotated TSV file (use '-' for stdin)")
	fs.StringVar(&inputPath, "i", "", "Input annotated TSV file (shorthand)")
	fs.StringVar(&outputPath, "output", "", "Output VCF file (default: stdout)")
	fs.StringVar(&outputPath, "o", "", "Output VCF file (shorthand)")
	fs.StringVar(&configPath, "config", "", "Conversion profile, YAML or JSON")
	fs.StringVar(&configPath, "c", "", "Conversion profile (shorthand)")
	fs.StringVar(&dbPath, "db", "", "DuckDB database to store converted records (optional)")
	fs.StringVar(&verbosity, "verbosity", "", "Log level: debug, info, warning or error (default: warning)")
	fs.StringVar(&verbosity, "v", "", "Log level (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Convert an annotated structural-variant table to VCF.

The conversion profile describes how the table's columns map onto VCF
fields. Each variant group's full and split annotation rows are merged
into a single record.

Usage:
  variantconvert convert [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  variantconvert convert -i annotated.tsv -o out.vcf -c annotsv.yaml
  variantconvert convert -i annotated.tsv.gz -c annotsv.yaml > out.vcf
  cat annotated.tsv | variantconvert convert -i - -c annotsv.yaml
  variantconvert convert -i annotated.tsv -o out.vcf -c annotsv.yaml --db runs.duckdb
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	// Validate required arguments
	if inputPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --input is required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if configPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --config is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	initViper()
	if verbosity == "" {
		verbosity = viper.GetString("convert.verbosity")
	}
	if verbosity == "" {
		verbosity = "warning"
	}
	logger, err := buildLogger(verbosity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	conv, err := convert.NewConverter(cfg, helpers.NewRegistry())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	conv.SetLogger(logger)

	var out *os.File
	if outputPath == "" || outputPath == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		defer out.Close()
	}

	var store *duckdb.Store
	var records []output.Record
	if dbPath != "" {
		store, err = duckdb.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			return ExitError
		}
		defer store.Close()
		conv.SetRecordObserver(func(rec output.Record) {
			records = append(records, rec)
		})
	}

	started := time.Now()
	summary, err := conv.Convert(inputPath, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Hint: Check that the input path is correct\n")
		}
		return ExitError
	}

	if store != nil {
		if err := store.InsertRecords(records); err != nil {
			fmt.Fprintf(os.Stderr, "Error storing records: %v\n", err)
			return ExitError
		}
		run := duckdb.ConversionRun{
			InputFile:   inputPath,
			Profile:     configPath,
			ToolVersion: version,
			StartedAt:   started,
			Records:     int64(summary.Records),
		}
		run.StatInput()
		if err := store.RecordRun(run); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording run: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(os.Stderr, "Stored %d records in %s\n", len(records), dbPath)
	}

	fmt.Fprintf(os.Stderr, "\nConversion complete!\n")
	fmt.Fprintf(os.Stderr, "  Rows:    %d\n", summary.Rows)
	fmt.Fprintf(os.Stderr, "  Samples: %d\n", summary.Samples)
	fmt.Fprintf(os.Stderr, "  Groups:  %d\n", summary.Groups)
	fmt.Fprintf(os.Stderr, "  Records: %d\n", summary.Records)

	return ExitSuccess
}

// buildLogger creates a console logger at the requested level.
func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warning", "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown verbosity %q (expected debug, info, warning or error)", level)
	}
	return cfg.Build()
}
