package convert

import (
	"fmt"

	"github.com/Rapsssito/AnnotSV/internal/config"
	"github.com/Rapsssito/AnnotSV/internal/output"
	"github.com/Rapsssito/AnnotSV/internal/tsv"
)

// buildRecord assembles the output line for one variant group. Main column
// values come from the group's first row in emission order; the INFO block
// comes from the merge pass.
func (c *Converter) buildRecord(group VariantGroup, ann *MergedAnnotation, samples []string) (output.Record, error) {
	first := group.Rows[0]

	rec := output.Record{
		GroupID: group.ID,
		Info:    ann.InfoString(),
	}

	for _, rs := range c.cfg.VCFColumns.MainRoles() {
		value, err := c.resolveRole(rs, first, group.ID)
		if err != nil {
			return output.Record{}, err
		}
		switch rs.Role {
		case config.RoleChrom:
			rec.Chrom = value
		case config.RolePos:
			rec.Pos = value
		case config.RoleID:
			rec.ID = value
		case config.RoleRef:
			rec.Ref = value
		case config.RoleAlt:
			rec.Alt = value
		case config.RoleQual:
			rec.Qual = value
		case config.RoleFilter:
			rec.Filter = value
		}
	}

	if formatCol := c.cfg.VCFColumns.Format.Column; formatCol != "" {
		rec.Format = first.Value(formatCol)
		rec.Samples = make([]string, len(samples))
		for i, sample := range samples {
			rec.Samples[i] = first.Value(sample)
		}
	} else {
		// No FORMAT mapping: a synthetic GT with the profile's default
		// genotype, as a single sample value.
		rec.Format = "GT"
		rec.Samples = []string{c.cfg.General.DefaultGenotype}
	}

	return rec, nil
}

// resolveRole produces the value for one leading VCF role from the group's
// first row. Unmapped FILTER becomes PASS; other unmapped roles become the
// placeholder.
func (c *Converter) resolveRole(rs config.RoleSpec, first tsv.Row, groupID string) (string, error) {
	spec := rs.Spec
	switch {
	case spec.IsHelper():
		fn, ok := c.registry.Lookup(spec.Helper.Name)
		if !ok {
			return "", fmt.Errorf("variant group %s: unknown helper function %q", groupID, spec.Helper.Name)
		}
		args := make([]string, len(spec.Helper.Args))
		for i, col := range spec.Helper.Args {
			value, ok := first.Lookup(col)
			if !ok {
				return "", fmt.Errorf("variant group %s: helper %s: argument column %q not found", groupID, spec.Helper.Name, col)
			}
			args[i] = value
		}
		value, err := fn(args...)
		if err != nil {
			return "", fmt.Errorf("variant group %s: %w", groupID, err)
		}
		return value, nil
	case spec.Column == "":
		if rs.Role == config.RoleFilter {
			return "PASS", nil
		}
		return tsv.Placeholder, nil
	default:
		return first.Value(spec.Column), nil
	}
}
