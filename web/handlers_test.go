package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/orrery-org/orrery/dataset"
)

const testCSV = "method,orbital_period,mass,year\n" +
	"Transit,3.52,0.5,2009\n" +
	"Radial Velocity,269.3,7.1,2006\n" +
	"Imaging,,,2008\n" +
	"Transit,1.33,1.2,2009\n" +
	"Microlensing,3300,0.8,2010\n"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worlds.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))

	p := dataset.NewProvider(path)
	require.NoError(t, p.Load())
	return NewServer(p)
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHomePage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "worlds")
	require.Contains(t, body, "5 rows")
	require.Contains(t, body, "orbital_period")
}

func TestHomeUnknownPath(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)
}

func TestQuestionList(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/questions")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Which years had the most planet discoveries?")
	require.Contains(t, body, "/questions/5")
}

func TestQuestionInvalidID(t *testing.T) {
	s := newTestServer(t)

	for _, url := range []string{"/questions/0", "/questions/99", "/questions/abc"} {
		rec := get(t, s, url)
		// Invalid ids come back as the list page with an error banner, not
		// a server fault.
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "Invalid question ID. Please select a question between 1-5.")
		require.Contains(t, body, "Which years had the most planet discoveries?")
	}
}

func TestQuestionPage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/questions/2")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "Planet Counts by Detection Method")
	require.Contains(t, body, "Plotly.newPlot")
	require.Contains(t, body, "Transit")
}

func TestQuestionPNG(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/questions/1/chart.png")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.NotZero(t, rec.Body.Len())

	require.Equal(t, http.StatusNotFound, get(t, s, "/questions/abc/chart.png").Code)
	require.Equal(t, http.StatusNotFound, get(t, s, "/questions/99/chart.png").Code)
}

func TestDataBareForm(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/data")
	require.Equal(t, http.StatusOK, rec.Code)

	// The untouched form shows columns but no result and no error.
	body := rec.Body.String()
	require.Contains(t, body, `name="cols"`)
	require.NotContains(t, body, "No results found.")
	require.NotContains(t, body, `<div class="alert alert-danger">`)
}

func TestDataQuery(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/data?cols=method&cols=mass&filter_col=mass&op=%3E&value=0.6&limit=20")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "<table")
	require.Contains(t, body, "<td>7.1</td>")
	require.Contains(t, body, "<td>0.8</td>")
	require.NotContains(t, body, "<td>0.5</td>")
}

func TestDataQueryErrors(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "unknown column",
			url:  "/data?cols=ghost",
			want: "invalid column",
		},
		{
			name: "filter on unselected column",
			url:  "/data?cols=method&filter_col=mass&op=%3E&value=1",
			want: "not among the selected columns",
		},
		{
			name: "non-numeric relational value",
			url:  "/data?cols=mass&filter_col=mass&op=%3E&value=heavy",
			want: "is not numeric",
		},
		{
			name: "filter with no columns selected",
			url:  "/data?filter_col=mass&op=%3E&value=1",
			want: "select at least one column",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, s, tc.url)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestDataNoResults(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/data?cols=method&filter_col=method&op=%3D%3D&value=Astrometry")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No results found.")
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/data/export?cols=method&cols=year")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename=filtered_data.csv`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Equal(t, "method,year", lines[0])
	require.Len(t, lines, 6) // header + 5 rows
}

func TestExportCSVLenientFilter(t *testing.T) {
	s := newTestServer(t)

	// A broken filter must not break the download; it exports unfiltered.
	rec := get(t, s, "/data/export?cols=mass&filter_col=mass&op=%3E&value=heavy")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 6)
}

func TestExportCSVNoColumns(t *testing.T) {
	s := newTestServer(t)

	// No selection exports the full schema.
	rec := get(t, s, "/data/export")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Equal(t, "method,orbital_period,mass,year", lines[0])
}

func TestExportXLSX(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/data/export.xlsx?cols=method")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename=filtered_data.xlsx`, rec.Header().Get("Content-Disposition"))
	// XLSX is a zip container; check the magic bytes.
	require.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestExportXLSXMatchesCSV(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/data/export.xlsx?cols=method&cols=year&limit=3")
	require.Equal(t, http.StatusOK, rec.Code)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"method", "year"},
		{"Transit", "2009"},
		{"Radial Velocity", "2006"},
		{"Imaging", "2008"},
	}, rows)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok dataset=worlds rows=5 cols=4\n", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)

	get(t, s, "/") // generate at least one observation

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "orrery_http_requests_total")
}
