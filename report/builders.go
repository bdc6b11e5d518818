package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/orrery-org/orrery/dataset"
)

// ============================================================================
// REPORT BUILDERS — five fixed aggregation + chart pipelines
// ============================================================================
// Common shape: read the full table → drop rows missing the columns of
// interest → empty set short-circuits to the shared insufficient-data
// result → aggregate → chart spec → summary. Builders never fail; the
// only degenerate outcome is the insufficient-data shape.
//
// Column names are the dataset's domain fields: year, method,
// orbital_period, mass.
// ============================================================================

const (
	colYear   = "year"
	colMethod = "method"
	colPeriod = "orbital_period"
	colMass   = "mass"
)

// group is one aggregation bucket in first-encounter order.
type group struct {
	key   string
	count int
	value float64
}

// countBy tallies rows per non-missing cell value of a column,
// preserving the order each value was first encountered.
func countBy(t *dataset.Table, column string) []group {
	index := make(map[string]int)
	var groups []group
	for i := 0; i < t.Len(); i++ {
		key := t.Cell(i, column)
		if key == "" {
			continue
		}
		if at, ok := index[key]; ok {
			groups[at].count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, group{key: key, count: 1})
	}
	return groups
}

// topByCount keeps the n highest-count groups. The sort is stable so ties
// keep their encounter order.
func topByCount(groups []group, n int) []group {
	sorted := make([]group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].count > sorted[j].count })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ============================================================================
// 1. DISCOVERIES PER YEAR
// ============================================================================

// DiscoveriesPerYear counts discoveries per year, keeps the ten
// highest-count years, and presents them in ascending year order.
func DiscoveriesPerYear(t *dataset.Table) Result {
	groups := countBy(t, colYear)
	if len(groups) == 0 {
		return insufficient("Discoveries Per Year")
	}

	top := topByCount(groups, 10)
	sort.SliceStable(top, func(i, j int) bool { return yearOf(top[i].key) < yearOf(top[j].key) })

	points := make([]Point, len(top))
	rows := make([][]string, len(top))
	for i, g := range top {
		points[i] = Point{Label: g.key, Value: float64(g.count)}
		rows[i] = []string{g.key, strconv.Itoa(g.count)}
	}

	return Result{
		Title: "Discoveries Per Year (Top 10)",
		Table: &TableData{Columns: []string{"Year", "Discoveries"}, Rows: rows},
		Chart: &ChartSpec{
			Kind:    ChartLine,
			Title:   "Planets Discoveries Over Top 10 Years",
			XLabel:  "Year",
			YLabel:  "Discoveries",
			Points:  points,
			Markers: true,
		},
	}
}

func yearOf(key string) int {
	y, err := strconv.Atoi(key)
	if err != nil {
		return 0
	}
	return y
}

// ============================================================================
// 2. COUNTS BY DETECTION METHOD
// ============================================================================

// CountsByMethod compares how often each detection method appears,
// keeping the ten most frequent (ties keep encounter order).
func CountsByMethod(t *dataset.Table) Result {
	groups := countBy(t, colMethod)
	if len(groups) == 0 {
		return insufficient("Detection Methods")
	}

	top := topByCount(groups, 10)

	points := make([]Point, len(top))
	rows := make([][]string, len(top))
	for i, g := range top {
		points[i] = Point{Label: g.key, Value: float64(g.count)}
		rows[i] = []string{g.key, strconv.Itoa(g.count)}
	}

	return Result{
		Title: "Planet Counts by Detection Method",
		Table: &TableData{Columns: []string{"Method", "Count"}, Rows: rows},
		Chart: &ChartSpec{
			Kind:         ChartBar,
			Title:        "Top 10 Detection Methods",
			XLabel:       "Detection Method",
			YLabel:       "Number of Planets",
			Points:       points,
			ColorByValue: true,
		},
	}
}

// ============================================================================
// 3. ORBITAL PERIOD DISTRIBUTION
// ============================================================================

// OrbitalPeriodDistribution shows the distribution of orbital periods up
// to 500 days. Long-period outliers are excluded so the histogram stays
// readable.
func OrbitalPeriodDistribution(t *dataset.Table) Result {
	values := numericInRange(t, colPeriod, 0, 500)
	if len(values) == 0 {
		return insufficient("Orbital Period Distribution")
	}

	return Result{
		Title: "Orbital Period Distribution",
		Stats: []Stat{
			{Label: "Planets in View", Value: fmt.Sprintf("%d (Periods ≤ 500 days)", len(values))},
			{Label: "Average Period", Value: fmt.Sprintf("%.2f days", mean(values))},
		},
		Note: "* Long-period outliers were hidden to improve clarity.",
		Chart: &ChartSpec{
			Kind:    ChartHistogram,
			Title:   "Orbital Period Distribution (Up to 500 Days)",
			XLabel:  "Orbital Period (Days)",
			YLabel:  "Planet Count",
			Values:  values,
			Bins:    50,
			Color:   "#ff7f50",
			Opacity: 0.85,
		},
	}
}

// ============================================================================
// 4. MASS DISTRIBUTION
// ============================================================================

// MassDistribution shows the distribution of planet masses up to two
// Jupiter masses, excluding the heavy gas giants that squash the axis.
func MassDistribution(t *dataset.Table) Result {
	values := numericInRange(t, colMass, 0, 2)
	if len(values) == 0 {
		return insufficient("Mass Distribution")
	}

	return Result{
		Title: "Planet Mass Distribution",
		Stats: []Stat{
			{Label: "Planets Analyzed", Value: fmt.Sprintf("%d (Mass ≤ 2 MJ)", len(values))},
			{Label: "Median Mass", Value: fmt.Sprintf("%.3f MJ", median(values))},
		},
		Note: "* Excluded heavy gas giants (>2 MJ) to focus on smaller planet distribution.",
		Chart: &ChartSpec{
			Kind:    ChartHistogram,
			Title:   "Detailed Mass Distribution (Up to 2 MJ)",
			XLabel:  "Jupiter Masses (MJ)",
			YLabel:  "Planet Count",
			Values:  values,
			Bins:    60,
			Color:   "#90ee90",
			Opacity: 0.85,
		},
	}
}

// numericInRange collects column values v with low < v <= high,
// dropping missing cells.
func numericInRange(t *dataset.Table, column string, low, high float64) []float64 {
	var values []float64
	for i := 0; i < t.Len(); i++ {
		v := t.Number(i, column)
		if math.IsNaN(v) || v <= low || v > high {
			continue
		}
		values = append(values, v)
	}
	return values
}

// ============================================================================
// 5. METHOD VS. MASS
// ============================================================================

// MethodVsMass correlates the ten most frequent detection methods with
// the mean mass of the planets they found, highest mean first.
func MethodVsMass(t *dataset.Table) Result {
	// Rows missing either field drop out before the top-10 cut, which is
	// why a method can disappear from this report entirely.
	massByMethod := make(map[string][]float64)
	index := make(map[string]int)
	var clean []group
	for i := 0; i < t.Len(); i++ {
		method := t.Cell(i, colMethod)
		mass := t.Number(i, colMass)
		if method == "" || math.IsNaN(mass) {
			continue
		}
		if at, ok := index[method]; ok {
			clean[at].count++
		} else {
			index[method] = len(clean)
			clean = append(clean, group{key: method, count: 1})
		}
		massByMethod[method] = append(massByMethod[method], mass)
	}
	if len(clean) == 0 {
		return insufficient("Average Mass by Method")
	}

	top := topByCount(clean, 10)
	for i := range top {
		top[i].value = mean(massByMethod[top[i].key])
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].value > top[j].value })

	points := make([]Point, len(top))
	rows := make([][]string, len(top))
	for i, g := range top {
		points[i] = Point{Label: g.key, Value: g.value}
		rows[i] = []string{g.key, fmt.Sprintf("%.2f", roundTo(g.value, 2))}
	}

	return Result{
		Title: "Average Mass by Method (Top 10)",
		Table: &TableData{Columns: []string{"Method", "Avg Mass (MJ)"}, Rows: rows},
		Note:  fmt.Sprintf("Out of all methods, only %d had valid mass records for this analysis.", len(top)),
		Chart: &ChartSpec{
			Kind:         ChartBar,
			Title:        "Average Planet Mass by Detection Method",
			XLabel:       "Detection Method",
			YLabel:       "Avg Mass (MJ)",
			Points:       points,
			ColorByValue: true,
		},
	}
}
