package report

// ============================================================================
// REPORT TYPES — render-ready output of the fixed analysis pipelines
// ============================================================================
// Every pipeline produces a Result fresh per invocation; nothing is cached.
// ChartSpec is a library-agnostic chart description consumed by both the
// plotly fragment renderer and the server-side PNG renderer.
// ============================================================================

// ChartKind selects the plot family.
type ChartKind string

const (
	ChartLine      ChartKind = "line"
	ChartBar       ChartKind = "bar"
	ChartHistogram ChartKind = "histogram"
)

// Point is one labeled value in a line or bar series.
type Point struct {
	Label string
	Value float64
}

// ChartSpec describes one chart: type, axes, data, styling. Line and bar
// charts carry Points; histograms carry the raw Values plus a bin count.
type ChartSpec struct {
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string

	Points []Point

	Values []float64
	Bins   int

	Color        string // fixed series color (hex), histograms
	ColorByValue bool   // bar color scaled by value on a continuous scale
	Markers      bool   // line charts: draw point markers
	Opacity      float64
}

// TableData is a small summary table (already aggregated, display order).
type TableData struct {
	Columns []string
	Rows    [][]string
}

// Stat is one label/value line of a statistics summary.
type Stat struct {
	Label string
	Value string
}

// Result is a complete report: title plus a summary (table and/or stats
// with an optional caveat note) and a chart. Insufficient results carry a
// nil chart and a fixed rendering downstream.
type Result struct {
	Title        string
	Table        *TableData
	Stats        []Stat
	Note         string
	Chart        *ChartSpec
	Insufficient bool
}

// insufficient is the shared empty-result shape: same for all pipelines.
func insufficient(title string) Result {
	return Result{Title: title, Insufficient: true}
}
