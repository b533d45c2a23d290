// Package main provides the variantconvert command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("variantconvert version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:])
	case "init":
		return runInit(args[1:])
	case "db":
		return runDB(args[1:])
	case "config":
		initViper()
		cmd := newConfigCmd()
		cmd.SetArgs(args[1:])
		if err := cmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitSuccess
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `variantconvert - Convert annotated variant tables to VCF

Usage:
  variantconvert [options] <command> [arguments]

Commands:
  convert     Convert an annotated SV table to VCF
  init        Write a starter conversion profile
  db          Inspect a conversion database
  config      Manage variantconvert configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Write the builtin AnnotSV profile (one-time setup)
  variantconvert init

  # Convert an AnnotSV table to VCF
  variantconvert convert -i annotated.tsv -o out.vcf -c ~/.variantconvert/configs/annotsv.yaml

  # Keep converted records queryable in DuckDB
  variantconvert convert -i annotated.tsv -o out.vcf -c annotsv.yaml --db runs.duckdb

  # Inspect stored records
  variantconvert db --db runs.duckdb

For more information on a command, use:
  variantconvert <command> --help
`)
}
