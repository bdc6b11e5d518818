package engine

import (
	"errors"
	"fmt"

	"github.com/orrery-org/orrery/dataset"
)

// ============================================================================
// QUERY ENGINE TYPES
// ============================================================================
// Spec is built per request and never persisted. View is a zero-copy
// projection over the shared dataset table: an ordered column subset plus
// row indices into the parent. Zero rows is a valid result, not an error.
// ============================================================================

// Op is a closed filter operator.
type Op string

const (
	OpEq       Op = "=="
	OpNe       Op = "!="
	OpContains Op = "contains"
	OpGt       Op = ">"
	OpLt       Op = "<"
	OpGe       Op = ">="
	OpLe       Op = "<="
)

// Relational reports whether the operator compares numerically.
func (op Op) Relational() bool {
	switch op {
	case OpGt, OpLt, OpGe, OpLe:
		return true
	}
	return false
}

// ParseOp validates a raw operator string.
func ParseOp(s string) (Op, error) {
	switch Op(s) {
	case OpEq, OpNe, OpContains, OpGt, OpLt, OpGe, OpLe:
		return Op(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, s)
}

// Filter is a single-column predicate. Op and Value arrive as raw request
// strings and are validated inside Query.
type Filter struct {
	Column string
	Op     string
	Value  string
}

// Spec is a per-request query: ordered column selection, optional filter,
// and a row limit.
type Spec struct {
	Columns []string
	Filter  *Filter
	Limit   int
}

// Error taxonomy. Wrapped with context at the failure site; callers
// branch with errors.Is.
var (
	ErrInvalidColumn        = errors.New("invalid column")
	ErrMissingSelection     = errors.New("no columns selected")
	ErrNonNumericComparison = errors.New("non-numeric comparison")
	ErrUnsupportedOperator  = errors.New("unsupported operator")
)

// ============================================================================
// VIEW — projected, filtered, row-limited subset (zero-copy)
// ============================================================================

// View is the derived table produced by applying a Spec. It holds row
// indices into the parent table — no cell copies.
type View struct {
	table   *dataset.Table
	columns []string
	rows    []int
}

// Columns returns the view's ordered column names.
func (v *View) Columns() []string { return v.columns }

// Len returns the number of rows in the view.
func (v *View) Len() int { return len(v.rows) }

// Cell returns the raw string at (row i, named column).
func (v *View) Cell(i int, column string) string {
	if i < 0 || i >= len(v.rows) {
		return ""
	}
	return v.table.Cell(v.rows[i], column)
}

// Row materializes one row in column order.
func (v *View) Row(i int) []string {
	out := make([]string, len(v.columns))
	for j, c := range v.columns {
		out[j] = v.Cell(i, c)
	}
	return out
}

// Rows materializes every row in column order. Used by the presentation
// and export layers, which need concrete cells anyway.
func (v *View) Rows() [][]string {
	out := make([][]string, len(v.rows))
	for i := range v.rows {
		out[i] = v.Row(i)
	}
	return out
}
