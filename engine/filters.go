package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/orrery-org/orrery/dataset"
)

// ============================================================================
// OPERATOR DISPATCH
// ============================================================================
// One predicate per operator variant. Equality and substring operators
// compare the cell's raw string representation; 1 vs 1.0 vs "1" are not
// distinguished. Relational operators read the numeric cell value; a NaN
// (missing or unparseable) cell never matches.
// ============================================================================

// predicate decides whether the cell at (table, row, column) passes.
type predicate func(t *dataset.Table, row int, column string) bool

// compilePredicate validates the operator/value pair and returns a
// row-wise predicate for it.
func compilePredicate(op Op, value string) (predicate, error) {
	if op.Relational() {
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q is not numeric for operator %q", ErrNonNumericComparison, value, op)
		}
		return relationalPredicate(op, num), nil
	}

	switch op {
	case OpEq:
		return func(t *dataset.Table, row int, column string) bool {
			return t.Cell(row, column) == value
		}, nil
	case OpNe:
		return func(t *dataset.Table, row int, column string) bool {
			return t.Cell(row, column) != value
		}, nil
	case OpContains:
		needle := strings.ToLower(value)
		return func(t *dataset.Table, row int, column string) bool {
			cell := t.Cell(row, column)
			if cell == "" {
				return false // missing cells never match a substring
			}
			return strings.Contains(strings.ToLower(cell), needle)
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
}

func relationalPredicate(op Op, num float64) predicate {
	return func(t *dataset.Table, row int, column string) bool {
		v := t.Number(row, column)
		if math.IsNaN(v) {
			return false
		}
		switch op {
		case OpGt:
			return v > num
		case OpLt:
			return v < num
		case OpGe:
			return v >= num
		case OpLe:
			return v <= num
		}
		return false
	}
}
