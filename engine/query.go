package engine

import (
	"fmt"
	"strings"

	"github.com/orrery-org/orrery/dataset"
)

// ============================================================================
// QUERY — strict (interactive view) and lenient (export) entry points
// ============================================================================
// Pipeline: validate → project columns → row predicate → truncate to limit.
// Projection happens before filtering; result order is the dataset's row
// order (no sort). The two entry points deliberately differ: the
// interactive path fails loudly on a bad spec, the export path drops the
// filter and still returns projected rows.
// ============================================================================

// Query applies a Spec to the table. Pure function of (table, spec).
//
// Validation:
//   - Columns must be non-empty and every name present in the schema.
//   - A filter column must exist in the full schema AND be part of the
//     selection — filtering on a hidden column is rejected, never silent.
//   - Relational operators require a numeric literal.
func Query(t *dataset.Table, spec Spec) (*View, error) {
	if len(spec.Columns) == 0 {
		return nil, fmt.Errorf("%w: select at least one column to display", ErrMissingSelection)
	}

	var invalid []string
	for _, c := range spec.Columns {
		if !t.HasColumn(c) {
			invalid = append(invalid, c)
		}
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, strings.Join(invalid, ", "))
	}

	var pred predicate
	filterCol := ""
	if f := spec.Filter; f != nil && f.Column != "" && f.Op != "" && f.Value != "" {
		if !t.HasColumn(f.Column) {
			return nil, fmt.Errorf("%w: filter column %q not found", ErrInvalidColumn, f.Column)
		}
		if !containsName(spec.Columns, f.Column) {
			return nil, fmt.Errorf("%w: filter column %q is not among the selected columns", ErrInvalidColumn, f.Column)
		}
		op, err := ParseOp(f.Op)
		if err != nil {
			return nil, err
		}
		pred, err = compilePredicate(op, f.Value)
		if err != nil {
			return nil, err
		}
		filterCol = f.Column
	}

	return project(t, spec.Columns, pred, filterCol, spec.Limit), nil
}

// QueryLenient applies the same filtering semantics but tolerates errors
// silently: unknown requested columns are dropped from the projection, and
// any filter problem (bad column, operator, or value) falls back to the
// unfiltered projection. With no columns requested, the full schema is
// exported. Never fails.
func QueryLenient(t *dataset.Table, spec Spec) *View {
	columns := make([]string, 0, len(spec.Columns))
	for _, c := range spec.Columns {
		if t.HasColumn(c) {
			columns = append(columns, c)
		}
	}
	if len(spec.Columns) == 0 {
		columns = t.Columns()
	}
	if len(columns) == 0 {
		return &View{table: t, columns: nil, rows: nil}
	}

	var pred predicate
	filterCol := ""
	if f := spec.Filter; f != nil && f.Column != "" && f.Op != "" && f.Value != "" && t.HasColumn(f.Column) {
		if op, err := ParseOp(f.Op); err == nil {
			if p, err := compilePredicate(op, f.Value); err == nil {
				pred = p
				filterCol = f.Column
			}
		}
	}

	return project(t, columns, pred, filterCol, spec.Limit)
}

// project walks the table once, keeping rows that pass the predicate,
// stopping at limit. A nil predicate keeps every row. Negative limits
// behave like zero.
func project(t *dataset.Table, columns []string, pred predicate, filterCol string, limit int) *View {
	if limit < 0 {
		limit = 0
	}

	rows := make([]int, 0, min(limit, t.Len()))
	for i := 0; i < t.Len() && len(rows) < limit; i++ {
		if pred != nil && !pred(t, i, filterCol) {
			continue
		}
		rows = append(rows, i)
	}

	return &View{table: t, columns: columns, rows: rows}
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
