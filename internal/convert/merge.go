package convert

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Rapsssito/AnnotSV/internal/config"
	"github.com/Rapsssito/AnnotSV/internal/tsv"
)

// RowKind classifies an annotation row by its discriminator value.
type RowKind int

const (
	// RowKindOther marks a row whose discriminator value is unrecognized.
	RowKindOther RowKind = iota
	// RowKindFull marks the row annotating the whole variant.
	RowKindFull
	// RowKindSplit marks a row annotating one overlapped feature.
	RowKindSplit
)

// KindOf classifies a discriminator cell value.
func KindOf(value string) RowKind {
	switch value {
	case "full":
		return RowKindFull
	case "split":
		return RowKindSplit
	default:
		return RowKindOther
	}
}

// MergeEngine reconciles the full and split rows of each variant group
// into a single annotation block.
type MergeEngine struct {
	mode    string
	discCol string   // discriminator column, "" when absent from the table
	columns []string // annotation columns, table order
	logger  *zap.Logger
}

// NewMergeEngine prepares a merge pass over table. The annotation view is
// the table header minus everything already spoken for: the mapped main
// VCF columns, the source-VCF passthrough columns, FORMAT, the samples
// column, the per-sample columns, the raw INFO passthrough, and the
// variant-group identifier.
func NewMergeEngine(cfg *config.Config, table *tsv.Table, samples []string, logger *zap.Logger) (*MergeEngine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.General.Mode != config.ModeFullSplit {
		return nil, &UnsupportedModeError{Mode: cfg.General.Mode}
	}

	svTypeCol := cfg.VCFColumns.InfoSpec(config.InfoKeySVType).Column
	if svTypeCol == "" || !table.HasColumn(svTypeCol) {
		return nil, &tsv.MalformedInputError{
			Detail: fmt.Sprintf("SV type column %q is required to build a VCF (for tables generated from BED input, rerun AnnotSV with -svtBEDcol)", svTypeCol),
		}
	}

	drop := make(map[string]bool)
	for _, rs := range cfg.VCFColumns.MainRoles() {
		if !rs.Spec.IsHelper() && rs.Spec.Column != "" {
			drop[rs.Spec.Column] = true
		}
	}
	// Passthrough columns copied verbatim from a source VCF never belong
	// in the annotation block, mapped or not.
	for _, name := range []string{config.RoleID, config.RoleRef, config.RoleAlt, config.RoleQual, config.RoleFilter} {
		drop[name] = true
	}
	if col := cfg.VCFColumns.Format.Column; col != "" {
		drop[col] = true
	}
	if col := cfg.VCFColumns.Sample.Column; col != "" {
		drop[col] = true
	}
	for _, sample := range samples {
		drop[sample] = true
	}
	if col := cfg.VCFColumns.InfoSpec(config.InfoKeyRaw).Column; col != "" {
		drop[col] = true
	}
	if col := cfg.VCFColumns.InfoSpec(config.InfoKeyVariantGroupID).Column; col != "" {
		drop[col] = true
	}

	var columns []string
	for _, name := range table.Columns() {
		if !drop[name] {
			columns = append(columns, name)
		}
	}

	discCol := cfg.VCFColumns.InfoSpec(config.InfoKeyAnnotationMode).Column
	if discCol != "" && !table.HasColumn(discCol) {
		discCol = ""
	}

	return &MergeEngine{
		mode:    cfg.General.Mode,
		discCol: discCol,
		columns: columns,
		logger:  logger,
	}, nil
}

// Columns returns the annotation view, in table order.
func (m *MergeEngine) Columns() []string {
	return m.columns
}

// Merge reconciles one variant group into its annotation block. Key order
// follows the annotation view. Groups without a usable discriminator merge
// to an empty block after a warning, so one odd table cannot abort a whole
// batch.
func (m *MergeEngine) Merge(group VariantGroup) (*MergedAnnotation, error) {
	merged := NewMergedAnnotation()

	if m.discCol == "" {
		m.logger.Warn("no annotation mode column, emitting empty INFO",
			zap.String("group", group.ID))
		return merged, nil
	}

	var fulls, splits []tsv.Row
	for _, row := range group.Rows {
		value := row.Value(m.discCol)
		switch KindOf(value) {
		case RowKindFull:
			fulls = append(fulls, row)
		case RowKindSplit:
			splits = append(splits, row)
		default:
			return nil, &ValidationError{
				GroupID: group.ID,
				Detail:  fmt.Sprintf("unexpected annotation mode %q (expected full or split)", value),
			}
		}
	}

	if len(fulls) > 1 {
		return nil, &ValidationError{
			GroupID: group.ID,
			Detail:  fmt.Sprintf("%d full annotation rows (expected at most one)", len(fulls)),
		}
	}

	if len(fulls) == 1 {
		full := fulls[0]
		for _, col := range m.columns {
			merged.set(col, NormalizeDecimal(sanitizeInfoValue(full.Value(col))))
		}
	} else {
		if len(splits) == 0 {
			return merged, nil
		}
		// Split-only group: seed as if the full row were all placeholders.
		for _, col := range m.columns {
			merged.set(col, tsv.Placeholder)
		}
	}

	if len(splits) == 0 {
		return merged, nil
	}

	for _, col := range m.columns {
		if col == m.discCol {
			merged.set(col, m.mode)
			continue
		}
		values := make([]string, 0, len(splits)+1)
		base, _ := merged.Get(col)
		values = append(values, base)
		for _, row := range splits {
			values = append(values, NormalizeDecimal(sanitizeInfoValue(row.Value(col))))
		}
		// Split values are joined verbatim, duplicates included, so entry
		// positions line up across keys.
		merged.set(col, strings.Join(values, "|"))
	}

	return merged, nil
}

// sanitizeInfoValue rewrites semicolons to commas so an annotation value
// cannot terminate the INFO block early.
func sanitizeInfoValue(v string) string {
	return strings.ReplaceAll(v, ";", ",")
}
