// Package config loads and validates conversion profiles.
//
// A conversion profile describes how one annotation table format maps onto
// VCF: which physical column backs each VCF role, how observed values and
// INFO keys should be described in the synthesized header, and which static
// genome lines to carry over. Profiles are written in YAML; JSON profiles
// load unchanged since every JSON document is valid YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VCF roles recognized in the VCF_COLUMNS section.
const (
	RoleChrom  = "#CHROM"
	RolePos    = "POS"
	RoleID     = "ID"
	RoleRef    = "REF"
	RoleAlt    = "ALT"
	RoleQual   = "QUAL"
	RoleFilter = "FILTER"
	RoleFormat = "FORMAT"
	RoleSample = "SAMPLE"
	RoleInfo   = "INFO"
)

// INFO sub-entries with engine-level meaning. Every other INFO entry is an
// ordinary annotation passthrough.
const (
	InfoKeyRaw            = "INFO"
	InfoKeyVariantGroupID = "AnnotSV_ID"
	InfoKeySVType         = "SV_type"
	InfoKeyAnnotationMode = "Annotation_mode"
)

// ModeFullSplit is the only merge mode the conversion engine implements.
const ModeFullSplit = "full&split"

// DefaultGenotype is written for the synthetic GT sample column when the
// profile does not override it.
const DefaultGenotype = "./."

// Config is a fully parsed conversion profile.
type Config struct {
	General            General            `yaml:"GENERAL"`
	VCFColumns         VCFColumns         `yaml:"VCF_COLUMNS"`
	ColumnsDescription ColumnsDescription `yaml:"COLUMNS_DESCRIPTION"`
	Genome             Genome             `yaml:"GENOME"`
}

// General holds profile-wide settings.
type General struct {
	Origin          string `yaml:"origin"`
	Mode            string `yaml:"mode"`
	SkipRows        int    `yaml:"skip_rows"`
	DefaultGenotype string `yaml:"default_genotype"`
}

// VCFColumns maps each VCF role to the table column (or helper function)
// that produces its value. Empty entries leave the role unmapped.
type VCFColumns struct {
	Chrom  ColumnSpec            `yaml:"#CHROM"`
	Pos    ColumnSpec            `yaml:"POS"`
	ID     ColumnSpec            `yaml:"ID"`
	Ref    ColumnSpec            `yaml:"REF"`
	Alt    ColumnSpec            `yaml:"ALT"`
	Qual   ColumnSpec            `yaml:"QUAL"`
	Filter ColumnSpec            `yaml:"FILTER"`
	Info   map[string]ColumnSpec `yaml:"INFO"`
	Format ColumnSpec            `yaml:"FORMAT"`
	Sample ColumnSpec            `yaml:"SAMPLE"`
}

// RoleSpec pairs one of the leading VCF roles with its column mapping.
type RoleSpec struct {
	Role string
	Spec ColumnSpec
}

// MainRoles returns the seven leading VCF roles in title-line order.
func (v VCFColumns) MainRoles() []RoleSpec {
	return []RoleSpec{
		{RoleChrom, v.Chrom},
		{RolePos, v.Pos},
		{RoleID, v.ID},
		{RoleRef, v.Ref},
		{RoleAlt, v.Alt},
		{RoleQual, v.Qual},
		{RoleFilter, v.Filter},
	}
}

// InfoSpec returns the column mapping for an INFO sub-entry, or the zero
// spec when the profile omits it.
func (v VCFColumns) InfoSpec(key string) ColumnSpec {
	return v.Info[key]
}

// helperTag marks a profile entry as a helper-function descriptor.
const helperTag = "HELPER_FUNCTION"

// ColumnSpec is one VCF_COLUMNS entry. A role is either unmapped (empty
// scalar), mapped to a table column by name, or computed by a helper
// function written as ["HELPER_FUNCTION", name, arg-columns...].
type ColumnSpec struct {
	Column string
	Helper *HelperSpec
}

// HelperSpec names a registered helper function and the table columns whose
// cell values are passed to it.
type HelperSpec struct {
	Name string
	Args []string
}

// UnmarshalYAML decodes either the scalar or the helper-descriptor form.
func (s *ColumnSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&s.Column)
	case yaml.SequenceNode:
		var parts []string
		if err := value.Decode(&parts); err != nil {
			return err
		}
		if len(parts) < 2 || parts[0] != helperTag {
			return fmt.Errorf("line %d: column descriptor list must be [%q, <name>, <arg columns>...]", value.Line, helperTag)
		}
		s.Helper = &HelperSpec{Name: parts[1], Args: parts[2:]}
		return nil
	default:
		return fmt.Errorf("line %d: column descriptor must be a string or a list", value.Line)
	}
}

// IsMapped reports whether the role resolves to a value at all.
func (s ColumnSpec) IsMapped() bool {
	return s.Column != "" || s.Helper != nil
}

// IsHelper reports whether the role is computed by a helper function.
func (s ColumnSpec) IsHelper() bool {
	return s.Helper != nil
}

// FieldDescription carries the header metadata for one observed value or
// INFO/FORMAT key.
type FieldDescription struct {
	Description string `yaml:"Description"`
	Type        string `yaml:"Type"`
}

// ColumnsDescription maps a header section (REF, ALT, INFO, FORMAT) to
// per-key metadata. Lookups are case sensitive.
type ColumnsDescription map[string]map[string]FieldDescription

// Lookup returns the description entry for a key within a header section.
func (d ColumnsDescription) Lookup(section, key string) (FieldDescription, bool) {
	entries, ok := d[section]
	if !ok {
		return FieldDescription{}, false
	}
	entry, ok := entries[key]
	return entry, ok
}

// Genome holds the static header lines tied to the reference assembly.
type Genome struct {
	Assembly  string   `yaml:"assembly"`
	VCFHeader []string `yaml:"vcf_header"`
}

// Parse decodes a profile from raw YAML or JSON bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	cfg.General.Mode = ModeFullSplit
	cfg.General.DefaultGenotype = DefaultGenotype
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if cfg.General.Origin == "" {
		cfg.General.Origin = "unknown"
	}
	return cfg, nil
}

// Load reads a conversion profile from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return cfg, nil
}
