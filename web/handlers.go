package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/orrery-org/orrery/engine"
	"github.com/orrery-org/orrery/report"
)

// ============================================================================
// HANDLERS
// ============================================================================
// Validation errors surface as user-visible messages alongside the form
// state; they never produce a server fault. The export path uses the
// lenient engine entry point instead.
// ============================================================================

const (
	defaultViewLimit   = 20
	defaultExportLimit = 1000
)

// opChoices drives the operator dropdown on the data form.
var opChoices = []string{
	string(engine.OpEq), string(engine.OpNe), string(engine.OpContains),
	string(engine.OpGt), string(engine.OpLt), string(engine.OpGe), string(engine.OpLe),
}

// ── Landing page ──────────────────────────────────────────────────────────

type homePage struct {
	DatasetName string
	NumRows     int
	NumCols     int
	Columns     []string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	rows, cols := s.provider.Shape()
	renderTemplate(w, "index.html", homePage{
		DatasetName: s.provider.Name(),
		NumRows:     rows,
		NumCols:     cols,
		Columns:     s.provider.Columns(),
	})
}

// ── Questions ─────────────────────────────────────────────────────────────

type questionsPage struct {
	Questions []report.Question
	Selected  bool
	ID        int
	Title     string
	Summary   template.HTML
	Chart     template.HTML
	Error     string
}

func (s *Server) handleQuestionList(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "questions.html", questionsPage{Questions: report.Questions()})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/questions/")

	if id, ok := strings.CutSuffix(rest, "/chart.png"); ok {
		s.handleQuestionPNG(w, r, id)
		return
	}

	id, err := strconv.Atoi(rest)
	if err != nil || id < 1 || id > len(report.Questions()) {
		// Invalid ids reuse the list-page shape with an error message.
		renderTemplate(w, "questions.html", questionsPage{
			Questions: report.Questions(),
			Error:     "Invalid question ID. Please select a question between 1-5.",
		})
		return
	}

	res, err := report.Run(id, s.provider.Snapshot())
	if err != nil {
		renderTemplate(w, "questions.html", questionsPage{
			Questions: report.Questions(),
			Error:     err.Error(),
		})
		return
	}

	renderTemplate(w, "questions.html", questionsPage{
		Questions: report.Questions(),
		Selected:  true,
		ID:        id,
		Title:     res.Title,
		Summary:   SummaryHTML(res),
		Chart:     ResultChartHTML(res, fmt.Sprintf("chart-q%d", id)),
	})
}

func (s *Server) handleQuestionPNG(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	res, err := report.Run(id, s.provider.Snapshot())
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if res.Insufficient || res.Chart == nil {
		http.Error(w, "insufficient data to render a chart", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := RenderPNG(res.Chart, w); err != nil {
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
	}
}

// ── Generic data view ─────────────────────────────────────────────────────

type columnChoice struct {
	Name     string
	Selected bool
}

type dataPage struct {
	Columns   []columnChoice
	Ops       []string
	Result    template.HTML
	Error     string
	FilterCol string
	Op        string
	Value     string
	Limit     int
	Query     string // raw query string, reused by the export links
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cols := q["cols"]
	spec := engine.Spec{
		Columns: cols,
		Limit:   parseLimit(q.Get("limit"), defaultViewLimit),
	}
	filterCol, op, value := q.Get("filter_col"), q.Get("op"), q.Get("value")
	if filterCol != "" && op != "" && value != "" {
		spec.Filter = &engine.Filter{Column: filterCol, Op: op, Value: value}
	}

	page := dataPage{
		Ops:       opChoices,
		FilterCol: filterCol,
		Op:        orDefault(op, "=="),
		Value:     value,
		Limit:     spec.Limit,
		Query:     r.URL.RawQuery,
	}

	selected := make(map[string]bool, len(cols))
	for _, c := range cols {
		selected[c] = true
	}
	for _, name := range s.provider.Columns() {
		page.Columns = append(page.Columns, columnChoice{Name: name, Selected: selected[name]})
	}

	// Processing starts only once the form was used; a bare GET shows the
	// form with no result and no error.
	if len(cols) > 0 || filterCol != "" {
		view, err := engine.Query(s.provider.Snapshot(), spec)
		switch {
		case err != nil:
			page.Error = userMessage(err)
		case view.Len() == 0:
			page.Result = noResultsHTML
		default:
			page.Result = TableHTML(view.Columns(), view.Rows())
		}
	}

	renderTemplate(w, "data.html", page)
}

// userMessage flattens an engine error into the text shown in the form.
func userMessage(err error) string {
	return err.Error()
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
