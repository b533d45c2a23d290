// Package tsv models the tab-separated annotation tables produced by SV
// annotation tools and loads them into memory for conversion.
package tsv

import (
	"sort"
	"strconv"

	"github.com/maruel/natural"
)

// Placeholder is the value recorded for empty cells and returned for
// lookups of columns a table does not have.
const Placeholder = "."

// Table is a fully materialized annotation table: an ordered header plus
// row-major cells. Loading normalizes ragged rows, so every row holds
// exactly one cell per column.
type Table struct {
	columns  []string
	colIndex map[string]int
	rows     [][]string
}

// NewTable creates an empty table with the given header. Duplicate column
// names are rejected.
func NewTable(columns []string) (*Table, error) {
	colIndex := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := colIndex[name]; dup {
			return nil, newMalformedf("duplicate column %q in header", name)
		}
		colIndex[name] = i
	}
	return &Table{columns: columns, colIndex: colIndex}, nil
}

// appendRow adds one normalized row. The caller guarantees len(cells)
// equals NumColumns.
func (t *Table) appendRow(cells []string) {
	t.rows = append(t.rows, cells)
}

// Columns returns the header names in table order.
func (t *Table) Columns() []string {
	return t.columns
}

// NumColumns returns the header width.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIndex[name]
	return ok
}

// Row returns the i-th data row.
func (t *Table) Row(i int) Row {
	return Row{table: t, cells: t.rows[i]}
}

// DistinctValues returns the sorted set of values observed in a column.
// A column the table does not have yields nil.
func (t *Table) DistinctValues(col string) []string {
	i, ok := t.colIndex[col]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var values []string
	for _, row := range t.rows {
		if v := row[i]; !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

// SortByChromPos stably orders rows by chromosome (plain string order),
// then numerically by position. Rows whose position does not parse sort
// after parseable ones on the same chromosome.
func (t *Table) SortByChromPos(chromCol, posCol string) error {
	ci, ok := t.colIndex[chromCol]
	if !ok {
		return &MalformedInputError{Column: chromCol}
	}
	pi, ok := t.colIndex[posCol]
	if !ok {
		return &MalformedInputError{Column: posCol}
	}

	type sortKey struct {
		pos   float64
		posOK bool
	}
	keys := make([]sortKey, len(t.rows))
	for i, row := range t.rows {
		if v, err := strconv.ParseFloat(row[pi], 64); err == nil {
			keys[i] = sortKey{pos: v, posOK: true}
		}
	}

	order := t.identityOrder()
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := t.rows[order[a]], t.rows[order[b]]
		if ra[ci] != rb[ci] {
			return ra[ci] < rb[ci]
		}
		ka, kb := keys[order[a]], keys[order[b]]
		if ka.posOK != kb.posOK {
			return ka.posOK
		}
		return ka.posOK && ka.pos < kb.pos
	})
	t.reorder(order)
	return nil
}

// SortNatural stably reorders rows so chromosomes compare in natural order
// (chr2 before chr10). Relative order within a chromosome is preserved.
func (t *Table) SortNatural(chromCol string) error {
	ci, ok := t.colIndex[chromCol]
	if !ok {
		return &MalformedInputError{Column: chromCol}
	}

	order := t.identityOrder()
	sort.SliceStable(order, func(a, b int) bool {
		return natural.Less(t.rows[order[a]][ci], t.rows[order[b]][ci])
	})
	t.reorder(order)
	return nil
}

// Row is one annotation line viewed through the table header.
type Row struct {
	table *Table
	cells []string
}

// Value returns the cell under the named column, or Placeholder when the
// table has no such column.
func (r Row) Value(col string) string {
	i, ok := r.table.colIndex[col]
	if !ok {
		return Placeholder
	}
	return r.cells[i]
}

// Lookup returns the cell under the named column and whether the column
// exists.
func (r Row) Lookup(col string) (string, bool) {
	i, ok := r.table.colIndex[col]
	if !ok {
		return "", false
	}
	return r.cells[i], true
}

func (t *Table) identityOrder() []int {
	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	return order
}

func (t *Table) reorder(order []int) {
	rows := make([][]string, len(t.rows))
	for i, j := range order {
		rows[i] = t.rows[j]
	}
	t.rows = rows
}
