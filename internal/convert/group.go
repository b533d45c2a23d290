package convert

import (
	"github.com/Rapsssito/AnnotSV/internal/tsv"
)

// VariantGroup is the set of input rows sharing one variant-group
// identifier. Rows keep the table's current order.
type VariantGroup struct {
	ID   string
	Rows []tsv.Row
}

// GroupRows partitions the table's rows by the identifier column, with
// groups ordered by first appearance.
func GroupRows(table *tsv.Table, idCol string) ([]VariantGroup, error) {
	if !table.HasColumn(idCol) {
		return nil, &tsv.MalformedInputError{Column: idCol}
	}

	index := make(map[string]int)
	var groups []VariantGroup
	for i := 0; i < table.NumRows(); i++ {
		row := table.Row(i)
		id := row.Value(idCol)
		gi, ok := index[id]
		if !ok {
			gi = len(groups)
			index[id] = gi
			groups = append(groups, VariantGroup{ID: id})
		}
		groups[gi].Rows = append(groups[gi].Rows, row)
	}
	return groups, nil
}
