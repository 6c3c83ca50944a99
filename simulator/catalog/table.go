// Package catalog loads and filters the product table that formulas are
// evaluated against. It supplies the evaluator with numeric column vectors
// and the response layer with the original attribute cells.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
)

// Well-known column names from the source dataset.
const (
	ColSearchTerm = "search_term"
	ColBrand      = "brand_name"
	ColCategory   = "l3_category_name"
)

// Table is a column-ordered view of the catalog CSV. Every cell is kept as
// its original string; columns where all non-empty cells parse as numbers
// additionally carry a float64 vector for formula evaluation.
type Table struct {
	columns []string
	cells   map[string][]string
	numeric map[string][]float64
	rows    int
}

// NewTable builds a table from a header and row-major records. Records
// shorter or longer than the header are rejected.
func NewTable(header []string, records [][]string) (*Table, error) {
	t := &Table{
		columns: append([]string(nil), header...),
		cells:   make(map[string][]string, len(header)),
		numeric: make(map[string][]float64),
		rows:    len(records),
	}

	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+1, len(rec), len(header))
		}
	}

	for c, name := range header {
		col := make([]string, len(records))
		for r, rec := range records {
			col[r] = rec[c]
		}
		t.cells[name] = col

		if nums, ok := parseNumericColumn(col); ok {
			t.numeric[name] = nums
		}
	}

	return t, nil
}

// parseNumericColumn returns the column as float64s when every non-empty
// cell parses as a number. Empty cells become 0 so partially filled boost
// columns still evaluate.
func parseNumericColumn(col []string) ([]float64, bool) {
	if len(col) == 0 {
		return nil, false
	}
	nums := make([]float64, len(col))
	seen := false
	for i, cell := range col {
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = v
		seen = true
	}
	return nums, seen
}

// Len returns the row count.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the column names in original CSV order.
func (t *Table) Columns() []string {
	return t.columns
}

// IsNumeric reports whether a column carries a numeric vector.
func (t *Table) IsNumeric(name string) bool {
	_, ok := t.numeric[name]
	return ok
}

// Cell returns the original string cell for a column and row.
func (t *Table) Cell(name string, row int) string {
	col, ok := t.cells[name]
	if !ok || row < 0 || row >= len(col) {
		return ""
	}
	return col[row]
}

// Numeric returns the float64 vector for a numeric column.
func (t *Table) Numeric(name string) ([]float64, error) {
	nums, ok := t.numeric[name]
	if !ok {
		if _, exists := t.cells[name]; exists {
			return nil, fmt.Errorf("column %q is not numeric", name)
		}
		return nil, fmt.Errorf("column %q not found", name)
	}
	return nums, nil
}

// NumericColumns extracts the named numeric columns as a map, the shape
// the formula evaluator binds from.
func (t *Table) NumericColumns(names []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(names))
	for _, name := range names {
		nums, err := t.Numeric(name)
		if err != nil {
			return nil, err
		}
		out[name] = nums
	}
	return out, nil
}

// Distinct returns the sorted distinct non-empty values of a column.
func (t *Table) Distinct(name string) []string {
	col, ok := t.cells[name]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var values []string
	for _, cell := range col {
		if cell == "" {
			continue
		}
		if _, dup := seen[cell]; dup {
			continue
		}
		seen[cell] = struct{}{}
		values = append(values, cell)
	}
	sort.Strings(values)
	return values
}

// Select returns a new table containing only the given rows, in the
// given order. Row indices must be valid for the receiver.
func (t *Table) Select(rows []int) *Table {
	out := &Table{
		columns: t.columns,
		cells:   make(map[string][]string, len(t.columns)),
		numeric: make(map[string][]float64, len(t.numeric)),
		rows:    len(rows),
	}
	for name, col := range t.cells {
		sel := make([]string, len(rows))
		for i, r := range rows {
			sel[i] = col[r]
		}
		out.cells[name] = sel
	}
	for name, col := range t.numeric {
		sel := make([]float64, len(rows))
		for i, r := range rows {
			sel[i] = col[r]
		}
		out.numeric[name] = sel
	}
	return out
}
