// Package output assembles and writes the VCF document produced by a
// conversion run.
package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Rapsssito/AnnotSV/internal/config"
	"github.com/Rapsssito/AnnotSV/internal/tsv"
)

// vcfTitleColumns are the fixed leading columns of the title line; sample
// names follow.
var vcfTitleColumns = []string{
	"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT",
}

// HeaderSynthesizer builds the meta-information block for one conversion
// run. The header is dynamic: FILTER, REF, ALT and FORMAT declarations
// come from the values actually observed in the input table, described via
// the profile's dictionaries.
type HeaderSynthesizer struct {
	cfg *config.Config
	now func() time.Time
}

// NewHeaderSynthesizer creates a synthesizer for the given profile.
func NewHeaderSynthesizer(cfg *config.Config) *HeaderSynthesizer {
	return &HeaderSynthesizer{cfg: cfg, now: time.Now}
}

// SetClock overrides the wall clock used for the fileDate line.
func (h *HeaderSynthesizer) SetClock(now func() time.Time) {
	if now != nil {
		h.now = now
	}
}

// Synthesize returns the complete header, meta lines first, title line
// last. infoKeys is the ordered union of INFO keys the merge pass
// produced.
func (h *HeaderSynthesizer) Synthesize(inputPath string, table *tsv.Table, samples []string, infoKeys []string) ([]string, error) {
	var lines []string

	lines = append(lines, "##fileformat=VCFv4.2")
	lines = append(lines, "##fileDate="+h.now().Format("02/01/2006"))

	lines = append(lines, "##source="+h.cfg.General.Origin)
	input, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, fmt.Errorf("resolve input path: %w", err)
	}
	lines = append(lines, "##InputFile="+input)

	lines = append(lines, h.filterLines(table)...)
	lines = append(lines, h.valueLines(table, config.RoleRef, h.cfg.VCFColumns.Ref)...)
	lines = append(lines, h.valueLines(table, config.RoleAlt, h.cfg.VCFColumns.Alt)...)
	lines = append(lines, h.infoLines(infoKeys)...)
	lines = append(lines, h.formatLines(table)...)
	lines = append(lines, h.cfg.Genome.VCFHeader...)

	title := strings.Join(vcfTitleColumns, "\t")
	for _, sample := range samples {
		title += "\t" + sample
	}
	lines = append(lines, title)

	return lines, nil
}

// filterLines declares each observed FILTER value. An unmapped FILTER role
// falls back to a synthetic PASS declaration matching the emitted records.
func (h *HeaderSynthesizer) filterLines(table *tsv.Table) []string {
	col := h.cfg.VCFColumns.Filter.Column
	if col == "" || !table.HasColumn(col) {
		return []string{`##FILTER=<ID=PASS,Description="Passed filter">`}
	}
	var lines []string
	for _, value := range table.DistinctValues(col) {
		lines = append(lines, fmt.Sprintf(`##FILTER=<ID=%s,Description=".">`, value))
	}
	return lines
}

// valueLines declares each observed value of a column-backed role (REF or
// ALT), described via the profile when an entry exists.
func (h *HeaderSynthesizer) valueLines(table *tsv.Table, section string, spec config.ColumnSpec) []string {
	if spec.Column == "" || !table.HasColumn(spec.Column) {
		return nil
	}
	var lines []string
	for _, value := range table.DistinctValues(spec.Column) {
		_, desc := h.describe(section, value)
		lines = append(lines, fmt.Sprintf(`##%s=<ID=%s,Description="%s">`, section, value, desc))
	}
	return lines
}

// infoLines declares every INFO key the merge pass produced, in first-seen
// order. Number is always "." since merged values are pipe-joined lists of
// variable length.
func (h *HeaderSynthesizer) infoLines(infoKeys []string) []string {
	var lines []string
	for _, key := range infoKeys {
		typ, desc := h.describe(config.RoleInfo, key)
		lines = append(lines, fmt.Sprintf(`##INFO=<ID=%s,Number=.,Type=%s,Description="%s">`, key, typ, desc))
	}
	return lines
}

// formatLines declares the distinct colon-separated FORMAT subfields
// observed across the table, or a synthetic GT declaration when the FORMAT
// role is unmapped.
func (h *HeaderSynthesizer) formatLines(table *tsv.Table) []string {
	col := h.cfg.VCFColumns.Format.Column
	var subfields []string
	if col != "" && table.HasColumn(col) {
		seen := make(map[string]bool)
		for _, cell := range table.DistinctValues(col) {
			for _, sub := range strings.Split(cell, ":") {
				if sub == "" || sub == tsv.Placeholder || seen[sub] {
					continue
				}
				seen[sub] = true
				subfields = append(subfields, sub)
			}
		}
		sort.Strings(subfields)
	} else {
		subfields = []string{"GT"}
	}

	var lines []string
	for _, sub := range subfields {
		typ, desc := h.describe(config.RoleFormat, sub)
		lines = append(lines, fmt.Sprintf(`##FORMAT=<ID=%s,Number=.,Type=%s,Description="%s">`, sub, typ, desc))
	}
	return lines
}

// describe resolves the declared type and description for a section key.
// Unknown keys fall back to Type=String and a generic provenance note, so
// any observed annotation still gets a well-formed declaration.
func (h *HeaderSynthesizer) describe(section, key string) (typ, desc string) {
	entry, ok := h.cfg.ColumnsDescription.Lookup(section, key)
	typ = entry.Type
	if typ == "" {
		typ = "String"
	}
	desc = entry.Description
	if !ok || desc == "" {
		desc = "Imported from " + h.cfg.General.Origin
	}
	return typ, desc
}
