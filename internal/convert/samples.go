package convert

import (
	"strings"

	"github.com/Rapsssito/AnnotSV/internal/config"
	"github.com/Rapsssito/AnnotSV/internal/tsv"
)

// ResolveSamples extracts the distinct sample names from the samples
// column, in order of first appearance. Cells hold comma-separated lists;
// placeholder cells contribute nothing. When the FORMAT role is mapped,
// per-sample genotype values are read from same-named table columns, so
// every sample must have one.
func ResolveSamples(table *tsv.Table, cfg *config.Config) ([]string, error) {
	sampleCol := cfg.VCFColumns.Sample.Column
	if sampleCol == "" {
		return nil, &tsv.MalformedInputError{Detail: "profile does not map the SAMPLE role to a column"}
	}
	if !table.HasColumn(sampleCol) {
		return nil, &tsv.MalformedInputError{Column: sampleCol}
	}

	seen := make(map[string]bool)
	var samples []string
	for i := 0; i < table.NumRows(); i++ {
		cell := table.Row(i).Value(sampleCol)
		if cell == tsv.Placeholder {
			continue
		}
		for _, name := range strings.Split(cell, ",") {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			samples = append(samples, name)
		}
	}

	if cfg.VCFColumns.Format.Column != "" {
		for _, sample := range samples {
			if !table.HasColumn(sample) {
				return nil, &SchemaMismatchError{Sample: sample}
			}
		}
	}

	return samples, nil
}
