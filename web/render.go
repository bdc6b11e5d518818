package web

import (
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/orrery-org/orrery/report"
)

// ============================================================================
// PRESENTATION ADAPTER
// ============================================================================
// Converts derived tables into display-ready HTML and chart specs into
// embeddable plotly fragments. Charts get a fixed dark theme: transparent
// page background, translucent plot background, white font and gridlines,
// and an interactive modebar with hover and annotation drawing tools. The
// fragment depends on the CDN plotly runtime loaded by the page template.
// ============================================================================

const (
	noResultsHTML    template.HTML = `<p class="text-warning text-center">No results found.</p>`
	noMatchHTML      template.HTML = `<p class="text-warning text-center">No matching data found for this specific analysis.</p>`
	insufficientHTML template.HTML = `<div class="alert alert-info">Insufficient data to generate a visualization.</div>`
)

// TableHTML renders a hoverable, borderless, centered table. Exactly the
// rows given are rendered — truncation is the engine's job.
func TableHTML(columns []string, rows [][]string) template.HTML {
	var b strings.Builder
	b.WriteString(`<table class="table table-hover" style="text-align:center">` + "\n<thead><tr>")
	for _, c := range columns {
		b.WriteString("<th>" + html.EscapeString(c) + "</th>")
	}
	b.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return template.HTML(b.String())
}

// SummaryHTML renders a report's summary block: stats lines, a table, a
// caveat note, or the fixed no-match text for insufficient results.
func SummaryHTML(res report.Result) template.HTML {
	if res.Insufficient {
		return noMatchHTML
	}

	var b strings.Builder
	b.WriteString(`<div class="data-summary text-center">` + "\n")
	for _, s := range res.Stats {
		fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>\n",
			html.EscapeString(s.Label), html.EscapeString(s.Value))
	}
	if res.Note != "" && res.Table != nil {
		fmt.Fprintf(&b, "<p><strong>Note:</strong> %s</p>\n", html.EscapeString(res.Note))
	}
	if res.Table != nil {
		b.WriteString(string(TableHTML(res.Table.Columns, res.Table.Rows)))
		b.WriteString("\n")
	}
	if res.Note != "" && res.Table == nil {
		fmt.Fprintf(&b, `<small class="text-muted">%s</small>`+"\n", html.EscapeString(res.Note))
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// ResultChartHTML renders a report's chart, or the fixed insufficient-data
// fragment when there is none.
func ResultChartHTML(res report.Result, domID string) template.HTML {
	if res.Insufficient || res.Chart == nil {
		return insufficientHTML
	}
	return ChartHTML(res.Chart, domID)
}

// ============================================================================
// PLOTLY FRAGMENT
// ============================================================================

type plotlyAxis struct {
	Title     axisTitle `json:"title"`
	ShowGrid  bool      `json:"showgrid"`
	GridColor string    `json:"gridcolor"`
	Color     string    `json:"color"`
}

type axisTitle struct {
	Text string `json:"text"`
}

type plotlyLayout struct {
	Title        layoutTitle    `json:"title"`
	PaperBGColor string         `json:"paper_bgcolor"`
	PlotBGColor  string         `json:"plot_bgcolor"`
	Font         fontStyle      `json:"font"`
	Margin       map[string]int `json:"margin"`
	XAxis        plotlyAxis     `json:"xaxis"`
	YAxis        plotlyAxis     `json:"yaxis"`
	ShowLegend   bool           `json:"showlegend"`
	BarGap       float64        `json:"bargap,omitempty"`
}

type layoutTitle struct {
	Text string    `json:"text"`
	Font fontStyle `json:"font"`
}

type fontStyle struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

type plotlyConfig struct {
	DisplayModeBar      bool     `json:"displayModeBar"`
	ModeBarButtonsToAdd []string `json:"modeBarButtonsToAdd"`
}

// ChartHTML serializes a chart spec as an embeddable plotly fragment.
func ChartHTML(spec *report.ChartSpec, domID string) template.HTML {
	trace := buildTrace(spec)
	layout := buildLayout(spec)
	config := plotlyConfig{
		DisplayModeBar:      true,
		ModeBarButtonsToAdd: []string{"v1hovermode", "drawline", "drawcircle", "drawrect"},
	}

	traceJSON, err := json.Marshal([]map[string]any{trace})
	if err != nil {
		return insufficientHTML
	}
	layoutJSON, _ := json.Marshal(layout)
	configJSON, _ := json.Marshal(config)

	return template.HTML(fmt.Sprintf(
		"<div id=%q class=\"chart\"></div>\n<script>Plotly.newPlot(%q, %s, %s, %s);</script>",
		domID, domID, traceJSON, layoutJSON, configJSON))
}

func buildTrace(spec *report.ChartSpec) map[string]any {
	switch spec.Kind {
	case report.ChartLine:
		return map[string]any{
			"type": "scatter",
			"mode": lineMode(spec.Markers),
			"x":    pointLabels(spec.Points),
			"y":    pointValues(spec.Points),
		}
	case report.ChartHistogram:
		return map[string]any{
			"type":    "histogram",
			"x":       spec.Values,
			"nbinsx":  spec.Bins,
			"marker":  map[string]any{"color": spec.Color},
			"opacity": spec.Opacity,
		}
	default: // bar
		marker := map[string]any{}
		if spec.ColorByValue {
			marker["color"] = pointValues(spec.Points)
			marker["colorscale"] = "Viridis"
		}
		return map[string]any{
			"type":   "bar",
			"x":      pointLabels(spec.Points),
			"y":      pointValues(spec.Points),
			"marker": marker,
		}
	}
}

func buildLayout(spec *report.ChartSpec) plotlyLayout {
	layout := plotlyLayout{
		Title:        layoutTitle{Text: spec.Title, Font: fontStyle{Size: 20}},
		PaperBGColor: "rgba(0,0,0,0)",
		PlotBGColor:  "rgba(0,0,0,0.2)",
		Font:         fontStyle{Color: "white"},
		Margin:       map[string]int{"l": 20, "r": 20, "t": 60, "b": 20},
		XAxis:        darkAxis(spec.XLabel),
		YAxis:        darkAxis(spec.YLabel),
	}
	if spec.Kind == report.ChartHistogram {
		layout.BarGap = 0.1
	}
	return layout
}

func darkAxis(label string) plotlyAxis {
	return plotlyAxis{
		Title:     axisTitle{Text: label},
		ShowGrid:  true,
		GridColor: "rgba(255,255,255,0.1)",
		Color:     "white",
	}
}

func lineMode(markers bool) string {
	if markers {
		return "lines+markers"
	}
	return "lines"
}

func pointLabels(points []report.Point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}

func pointValues(points []report.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}
