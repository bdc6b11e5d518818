package report

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orrery-org/orrery/dataset"
)

func parse(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.ParseTable("test", []byte(csv))
	require.NoError(t, err)
	return table
}

// emptyTable has the expected schema but no usable values in it.
func emptyTable(t *testing.T) *dataset.Table {
	t.Helper()
	return parse(t, "method,orbital_period,mass,year\n,,,\n")
}

func TestBuildersInsufficientData(t *testing.T) {
	table := emptyTable(t)

	cases := []struct {
		name  string
		build Builder
	}{
		{"discoveries per year", DiscoveriesPerYear},
		{"counts by method", CountsByMethod},
		{"orbital period distribution", OrbitalPeriodDistribution},
		{"mass distribution", MassDistribution},
		{"method vs mass", MethodVsMass},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := tc.build(table)
			require.True(t, res.Insufficient)
			require.Nil(t, res.Chart)
			require.Nil(t, res.Table)
			require.NotEmpty(t, res.Title)
		})
	}
}

func TestDiscoveriesPerYear(t *testing.T) {
	var b strings.Builder
	b.WriteString("year\n")
	// 2001 and 2002 appear once; 2003-2012 three times each, so the top
	// ten cut drops the two singletons.
	b.WriteString("2001\n2002\n")
	for y := 2003; y <= 2012; y++ {
		for i := 0; i < 3; i++ {
			b.WriteString(strconv.Itoa(y) + "\n")
		}
	}
	table := parse(t, b.String())

	res := DiscoveriesPerYear(table)
	require.False(t, res.Insufficient)
	require.Equal(t, "Discoveries Per Year (Top 10)", res.Title)

	require.NotNil(t, res.Chart)
	require.Equal(t, ChartLine, res.Chart.Kind)
	require.True(t, res.Chart.Markers)
	require.Len(t, res.Chart.Points, 10)

	// Top years are presented in ascending year order.
	require.Equal(t, "2003", res.Chart.Points[0].Label)
	require.Equal(t, "2012", res.Chart.Points[9].Label)
	require.Equal(t, 3.0, res.Chart.Points[0].Value)

	require.Equal(t, []string{"Year", "Discoveries"}, res.Table.Columns)
	require.Equal(t, []string{"2003", "3"}, res.Table.Rows[0])
}

func TestCountsByMethod(t *testing.T) {
	table := parse(t, "method\n"+
		"Transit\nTransit\nTransit\n"+
		"Radial Velocity\nRadial Velocity\n"+
		"Imaging\n")

	res := CountsByMethod(table)
	require.False(t, res.Insufficient)
	require.Equal(t, "Planet Counts by Detection Method", res.Title)

	require.Equal(t, ChartBar, res.Chart.Kind)
	require.True(t, res.Chart.ColorByValue)

	// Most frequent first.
	require.Equal(t, []Point{
		{Label: "Transit", Value: 3},
		{Label: "Radial Velocity", Value: 2},
		{Label: "Imaging", Value: 1},
	}, res.Chart.Points)

	require.Equal(t, []string{"Method", "Count"}, res.Table.Columns)
	require.Equal(t, []string{"Transit", "3"}, res.Table.Rows[0])
}

func TestCountsByMethodTopTenCut(t *testing.T) {
	var b strings.Builder
	b.WriteString("method\n")
	for i := 0; i < 12; i++ {
		b.WriteString("M" + strconv.Itoa(i) + "\n")
	}
	// M0 gets a second row so it wins the top spot.
	b.WriteString("M0\n")
	table := parse(t, b.String())

	res := CountsByMethod(table)
	require.Len(t, res.Chart.Points, 10)
	require.Equal(t, "M0", res.Chart.Points[0].Label)
}

func TestOrbitalPeriodDistribution(t *testing.T) {
	table := parse(t, "method,orbital_period\nA,10\nB,100\nC,400\nD,600\nE,\n")

	res := OrbitalPeriodDistribution(table)
	require.False(t, res.Insufficient)
	require.Equal(t, "Orbital Period Distribution", res.Title)

	// 600 is outside the 500-day window; the missing cell drops out.
	require.Equal(t, []Stat{
		{Label: "Planets in View", Value: "3 (Periods ≤ 500 days)"},
		{Label: "Average Period", Value: "170.00 days"},
	}, res.Stats)
	require.Contains(t, res.Note, "Long-period outliers")

	require.Equal(t, ChartHistogram, res.Chart.Kind)
	require.Equal(t, 50, res.Chart.Bins)
	require.Equal(t, "#ff7f50", res.Chart.Color)
	require.Equal(t, []float64{10, 100, 400}, res.Chart.Values)
}

func TestMassDistribution(t *testing.T) {
	table := parse(t, "mass\n0.1\n0.5\n1.9\n2.5\n3.0\n")

	res := MassDistribution(table)
	require.False(t, res.Insufficient)
	require.Equal(t, "Planet Mass Distribution", res.Title)

	// Only the three planets at or under 2 MJ survive; their median is 0.5.
	require.Equal(t, []Stat{
		{Label: "Planets Analyzed", Value: "3 (Mass ≤ 2 MJ)"},
		{Label: "Median Mass", Value: "0.500 MJ"},
	}, res.Stats)

	require.Equal(t, ChartHistogram, res.Chart.Kind)
	require.Equal(t, 60, res.Chart.Bins)
	require.Equal(t, "#90ee90", res.Chart.Color)
}

func TestMethodVsMass(t *testing.T) {
	table := parse(t, "method,mass\n"+
		"Transit,1.0\n"+
		"Transit,2.0\n"+
		"Radial Velocity,5.0\n"+
		"Imaging,\n")

	res := MethodVsMass(table)
	require.False(t, res.Insufficient)
	require.Equal(t, "Average Mass by Method (Top 10)", res.Title)

	// Imaging has no valid mass record and disappears; the rest sort by
	// mean mass, heaviest first.
	require.Equal(t, []Point{
		{Label: "Radial Velocity", Value: 5.0},
		{Label: "Transit", Value: 1.5},
	}, res.Chart.Points)

	require.Equal(t, []string{"Method", "Avg Mass (MJ)"}, res.Table.Columns)
	require.Equal(t, [][]string{
		{"Radial Velocity", "5.00"},
		{"Transit", "1.50"},
	}, res.Table.Rows)

	require.Equal(t, "Out of all methods, only 2 had valid mass records for this analysis.", res.Note)
	require.True(t, res.Chart.ColorByValue)
}

func TestRegistry(t *testing.T) {
	questions := Questions()
	require.Len(t, questions, 5)
	for i, q := range questions {
		require.Equal(t, i+1, q.ID)
		require.NotEmpty(t, q.Name)
	}
}

func TestRunInvalidID(t *testing.T) {
	table := emptyTable(t)
	for _, id := range []int{0, -1, 6, 99} {
		_, err := Run(id, table)
		require.ErrorIs(t, err, ErrInvalidQuestion)
	}
}

func TestRunValidIDs(t *testing.T) {
	table := emptyTable(t)
	for id := 1; id <= 5; id++ {
		res, err := Run(id, table)
		require.NoError(t, err)
		require.NotEmpty(t, res.Title)
	}
}
