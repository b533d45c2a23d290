package convert

import (
	"fmt"

	"github.com/Rapsssito/AnnotSV/internal/config"
)

// SchemaMismatchError reports a sample named in the samples column that has
// no column of its own in the input table.
type SchemaMismatchError struct {
	Sample string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: sample %q has no matching column; tables built from a multi-sample VCF must carry one column per sample", e.Sample)
}

// ValidationError reports a variant group whose rows violate the merge
// contract.
type ValidationError struct {
	GroupID string
	Detail  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("variant group %q: %s", e.GroupID, e.Detail)
}

// UnsupportedModeError reports a profile requesting a merge mode the engine
// does not implement.
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported mode %q: only %q is implemented", e.Mode, config.ModeFullSplit)
}

// UnsupportedFeatureError reports a profile feature the engine does not
// implement.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "unsupported feature: " + e.Feature
}
