package dataset

import (
	"math"
	"strconv"
)

// ============================================================================
// TABLE — Immutable, columnar, in-memory dataset
// ============================================================================
// Loaded once at process start, read-only afterwards. Cells keep their raw
// CSV string representation; numeric columns additionally carry a parsed
// float per cell (NaN = missing or unparseable). The engine and the report
// pipelines read through index-based accessors — no row copies.
// ============================================================================

// Kind classifies a column for filtering and aggregation.
type Kind int

const (
	KindString Kind = iota // categorical / free text
	KindNumber             // float or small integer measure
	KindYear               // integer calendar year
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindYear:
		return "year"
	default:
		return "string"
	}
}

// Column describes one dataset column.
type Column struct {
	Name string
	Kind Kind
}

// Table is the loaded dataset. Immutable post-construction.
type Table struct {
	name    string
	columns []Column
	index   map[string]int // column name → position
	cells   [][]string     // column-major raw strings, "" = missing
	numbers [][]float64    // column-major parsed values, NaN = missing; nil for string columns
	rows    int
}

// Name returns the dataset name.
func (t *Table) Name() string { return t.name }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return t.rows, len(t.columns) }

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column exists in the schema.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// KindOf returns the kind of a column (KindString for unknown names).
func (t *Table) KindOf(name string) Kind {
	if i, ok := t.index[name]; ok {
		return t.columns[i].Kind
	}
	return KindString
}

// Cell returns the raw string representation of a cell.
// Missing cells are the empty string. Out-of-range access returns "".
func (t *Table) Cell(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= t.rows {
		return ""
	}
	return t.cells[i][row]
}

// Number returns the numeric value of a cell, or NaN when the cell is
// missing, unparseable, or the column is not numeric.
func (t *Table) Number(row int, column string) float64 {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= t.rows {
		return math.NaN()
	}
	if t.numbers[i] != nil {
		return t.numbers[i][row]
	}
	// String columns still parse on demand so relational filters work on
	// anything that happens to hold digits.
	v, err := strconv.ParseFloat(t.cells[i][row], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
