package dataset

import (
	"strconv"
	"strings"
)

// ============================================================================
// COLUMN KIND INFERENCE
// ============================================================================
// Classifies each column from a bounded row sample:
//   1. Parse rate over non-empty sampled cells → numeric vs string
//   2. Integer-valued numerics inside a plausible calendar range → year
// Empty cells never count against a column. Headers are normalized to
// snake_case so "Orbital Period" and "orbital_period" name the same column.
// ============================================================================

const inferSampleSize = 1000

// minNumericRatio is the share of non-empty sampled cells that must parse
// as floats before a column is treated as numeric.
const minNumericRatio = 0.9

func inferKinds(headers []string, rows [][]string) []Column {
	columns := make([]Column, len(headers))
	for i, h := range headers {
		columns[i] = Column{Name: toSnakeCase(h), Kind: inferColumnKind(i, rows)}
	}
	return columns
}

func inferColumnKind(col int, rows [][]string) Kind {
	sample := len(rows)
	if sample > inferSampleSize {
		sample = inferSampleSize
	}

	nonEmpty, numeric, yearLike := 0, 0, 0
	for r := 0; r < sample; r++ {
		if col >= len(rows[r]) {
			continue
		}
		val := strings.TrimSpace(rows[r][col])
		if val == "" {
			continue
		}
		nonEmpty++
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			continue
		}
		numeric++
		if f == float64(int64(f)) && f >= 1000 && f <= 3000 {
			yearLike++
		}
	}

	if nonEmpty == 0 {
		return KindString
	}
	if float64(numeric)/float64(nonEmpty) < minNumericRatio {
		return KindString
	}
	if yearLike == numeric {
		return KindYear
	}
	return KindNumber
}

// toSnakeCase converts "Orbital Period" → "orbital_period".
func toSnakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
