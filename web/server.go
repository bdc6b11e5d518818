package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orrery-org/orrery/dataset"
)

// ============================================================================
// SERVER — routes and shared state
// ============================================================================
// One Server per process, holding the read-only dataset provider. Every
// handler recomputes from the snapshot; nothing is cached between
// requests.
// ============================================================================

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Server wires the dataset provider to the HTTP surface.
type Server struct {
	provider *dataset.Provider
	mux      *http.ServeMux
}

// NewServer creates the dashboard server over a loaded provider.
func NewServer(p *dataset.Provider) *Server {
	s := &Server{provider: p, mux: http.NewServeMux()}

	s.mux.HandleFunc("/", instrument("home", s.handleHome))
	s.mux.HandleFunc("/questions", instrument("questions", s.handleQuestionList))
	s.mux.HandleFunc("/questions/", instrument("question", s.handleQuestion))
	s.mux.HandleFunc("/data", instrument("data", s.handleData))
	s.mux.HandleFunc("/data/export", instrument("export_csv", s.handleExportCSV))
	s.mux.HandleFunc("/data/export.xlsx", instrument("export_xlsx", s.handleExportXLSX))
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	rows, cols := s.provider.Shape()
	fmt.Fprintf(w, "ok dataset=%s rows=%d cols=%d\n", s.provider.Name(), rows, cols)
}

func renderTemplate(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
