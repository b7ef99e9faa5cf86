package types

import "fmt"

// Table is the universal in-memory tabular value: ordered column names and
// positionally aligned rows of typed cells. Every extraction produces a
// fresh Table; once returned a Table is treated as immutable and is never
// shared between jobs.
type Table struct {
	columns []string
	rows    [][]Value
}

// NewTable creates an empty table with the given column names.
// Column names must be non-empty and unique within the table.
func NewTable(columns []string) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c == "" {
			return nil, fmt.Errorf("%w: empty column name", ErrInvalidTable)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidTable, c)
		}
		seen[c] = true
	}
	cols := append([]string(nil), columns...)
	return &Table{columns: cols}, nil
}

// AppendRow adds a row. The row length must match the column count.
func (t *Table) AppendRow(row []Value) error {
	if len(row) != len(t.columns) {
		return fmt.Errorf("%w: row has %d cells, table has %d columns",
			ErrInvalidTable, len(row), len(t.columns))
	}
	t.rows = append(t.rows, append([]Value(nil), row...))
	return nil
}

// Columns returns a copy of the ordered column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// Row returns the i-th row. The returned slice must not be modified.
func (t *Table) Row(i int) []Value { return t.rows[i] }

// Cell returns the value at (row, column index).
func (t *Table) Cell(row, col int) Value { return t.rows[row][col] }

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ColumnKinds returns the dominant non-null kind per column. A column with
// only nulls reports KindNull.
func (t *Table) ColumnKinds() []Kind {
	kinds := make([]Kind, len(t.columns))
	counts := make([]map[Kind]int, len(t.columns))
	for i := range counts {
		counts[i] = make(map[Kind]int)
	}
	for _, row := range t.rows {
		for i, v := range row {
			if !v.IsNull() {
				counts[i][v.Kind()]++
			}
		}
	}
	for i, c := range counts {
		best, bestN := KindNull, 0
		for k, n := range c {
			if n > bestN {
				best, bestN = k, n
			}
		}
		kinds[i] = best
	}
	return kinds
}

// Anomaly reports a column holding more than one non-null kind. Mixed
// columns are surfaced, never coerced.
type Anomaly struct {
	Column string `json:"column"`
	Kinds  []Kind `json:"kinds"`
}

// Anomalies returns one entry per column that mixes non-null kinds.
func (t *Table) Anomalies() []Anomaly {
	var out []Anomaly
	for i, name := range t.columns {
		seen := make(map[Kind]bool)
		var kinds []Kind
		for _, row := range t.rows {
			k := row[i].Kind()
			if k == KindNull || seen[k] {
				continue
			}
			seen[k] = true
			kinds = append(kinds, k)
		}
		if len(kinds) > 1 {
			out = append(out, Anomaly{Column: name, Kinds: kinds})
		}
	}
	return out
}
