package web

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/orrery-org/orrery/report"
)

// ============================================================================
// PNG RENDERER — static raster of a chart spec
// ============================================================================
// Server-side fallback for the interactive plotly fragment: the same
// ChartSpec drawn with go-chart, so a report chart can be saved or linked
// without the client-side runtime.
// ============================================================================

const (
	pngWidth  = 900
	pngHeight = 420
)

var (
	pngBackground = drawing.ColorFromHex("11141b")
	pngSeries     = drawing.ColorFromHex("4f46e5")
)

// RenderPNG draws the chart spec as a PNG on w.
func RenderPNG(spec *report.ChartSpec, w io.Writer) error {
	switch spec.Kind {
	case report.ChartLine:
		return renderLinePNG(spec, w)
	case report.ChartHistogram:
		return renderBarsPNG(spec.Title, histogramBars(spec), colorOrDefault(spec.Color), w)
	case report.ChartBar:
		return renderBarsPNG(spec.Title, pointBars(spec.Points), colorOrDefault(spec.Color), w)
	}
	return fmt.Errorf("unknown chart kind %q", spec.Kind)
}

func renderLinePNG(spec *report.ChartSpec, w io.Writer) error {
	n := len(spec.Points)
	if n == 0 {
		return fmt.Errorf("no points to draw")
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	ticks := make([]chart.Tick, 0, n+1)
	for i, p := range spec.Points {
		x := float64(i + 1)
		xs[i] = x
		ys[i] = p.Value
		ticks = append(ticks, chart.Tick{Value: x, Label: p.Label})
	}

	// go-chart needs a non-zero x range; pad single-point series.
	maxR := float64(n) + 0.5
	if n == 1 {
		maxR = 2.0
		ticks = append(ticks, chart.Tick{Value: 2, Label: ""})
		xs = append(xs, 2)
		ys = append(ys, ys[0])
	}

	style := chart.Style{StrokeColor: pngSeries, StrokeWidth: 2}
	if spec.Markers {
		style.DotColor = pngSeries
		style.DotWidth = 4
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      pngWidth,
		Height:     pngHeight,
		Background: chart.Style{FillColor: pngBackground, FontColor: drawing.ColorWhite},
		Canvas:     chart.Style{FillColor: pngBackground},
		XAxis: chart.XAxis{
			Name:  spec.XLabel,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: maxR},
			Style: chart.Style{FontColor: drawing.ColorWhite},
		},
		YAxis: chart.YAxis{
			Name:  spec.YLabel,
			Style: chart.Style{FontColor: drawing.ColorWhite},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys, Style: style},
		},
	}
	return ch.Render(chart.PNG, w)
}

func renderBarsPNG(title string, bars []chart.Value, fill drawing.Color, w io.Writer) error {
	if len(bars) == 0 {
		return fmt.Errorf("no bars to draw")
	}
	for i := range bars {
		if bars[i].Style.FillColor.IsZero() {
			bars[i].Style = chart.Style{FillColor: fill, StrokeColor: fill}
		}
	}

	ch := chart.BarChart{
		Title:      title,
		Width:      pngWidth,
		Height:     pngHeight,
		BarWidth:   pngWidth / (2 * len(bars)),
		Background: chart.Style{FillColor: pngBackground, FontColor: drawing.ColorWhite},
		Canvas:     chart.Style{FillColor: pngBackground},
		XAxis:      chart.Style{FontColor: drawing.ColorWhite},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: drawing.ColorWhite},
		},
		Bars: bars,
	}
	return ch.Render(chart.PNG, w)
}

// pointBars converts labeled points to bars, shading each bar by its
// value when the spec colors by value.
func pointBars(points []report.Point) []chart.Value {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}

	bars := make([]chart.Value, len(points))
	for i, p := range points {
		c := valueColor(p.Value, lo, hi)
		bars[i] = chart.Value{
			Value: p.Value,
			Label: p.Label,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
	}
	return bars
}

// histogramBars buckets the raw values into spec.Bins equal-width bins.
func histogramBars(spec *report.ChartSpec) []chart.Value {
	if len(spec.Values) == 0 || spec.Bins <= 0 {
		return nil
	}

	lo, hi := spec.Values[0], spec.Values[0]
	for _, v := range spec.Values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / float64(spec.Bins)
	if width == 0 {
		return []chart.Value{{Value: float64(len(spec.Values)), Label: fmt.Sprintf("%.2f", lo)}}
	}

	counts := make([]int, spec.Bins)
	for _, v := range spec.Values {
		b := int((v - lo) / width)
		if b >= spec.Bins { // hi itself lands in the last bin
			b = spec.Bins - 1
		}
		counts[b]++
	}

	// Label every tenth bin so 50-60 bins stay readable.
	bars := make([]chart.Value, spec.Bins)
	for b, c := range counts {
		label := ""
		if b%10 == 0 {
			label = fmt.Sprintf("%.0f", lo+float64(b)*width)
		}
		bars[b] = chart.Value{Value: float64(c), Label: label}
	}
	return bars
}

func colorOrDefault(hex string) drawing.Color {
	if hex == "" {
		return pngSeries
	}
	return drawing.ColorFromHex(hex[1:]) // strip leading '#'
}

// valueColor maps a value onto a dark-blue → teal → yellow ramp, the
// raster stand-in for the fragment renderer's continuous scale.
func valueColor(v, lo, hi float64) drawing.Color {
	t := 0.5
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	anchors := []drawing.Color{
		drawing.ColorFromHex("440154"),
		drawing.ColorFromHex("3b528b"),
		drawing.ColorFromHex("21918c"),
		drawing.ColorFromHex("5ec962"),
		drawing.ColorFromHex("fde725"),
	}
	pos := t * float64(len(anchors)-1)
	i := int(pos)
	if i >= len(anchors)-1 {
		return anchors[len(anchors)-1]
	}
	frac := pos - float64(i)
	a, b := anchors[i], anchors[i+1]
	return drawing.Color{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: 255,
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
