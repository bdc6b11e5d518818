package web

import (
	"encoding/csv"
	"log"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/orrery-org/orrery/engine"
)

// ============================================================================
// EXPORT — downloadable CSV / XLSX of the current filtered view
// ============================================================================
// Exports use the lenient engine path: a bad filter is silently dropped
// and the projected-but-unfiltered rows are returned. A download should
// never fail because of a typo in the filter box.
// ============================================================================

func (s *Server) exportView(r *http.Request) *engine.View {
	q := r.URL.Query()
	spec := engine.Spec{
		Columns: q["cols"],
		Limit:   parseLimit(q.Get("limit"), defaultExportLimit),
	}
	if col, op, value := q.Get("filter_col"), q.Get("op"), q.Get("value"); col != "" && op != "" && value != "" {
		spec.Filter = &engine.Filter{Column: col, Op: op, Value: value}
	}
	return engine.QueryLenient(s.provider.Snapshot(), spec)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	view := s.exportView(r)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=filtered_data.csv`)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write(view.Columns())
	for i := 0; i < view.Len(); i++ {
		cw.Write(view.Row(i))
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	view := s.exportView(r)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	for j, name := range view.Columns() {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			http.Error(w, "failed to build workbook", http.StatusInternalServerError)
			return
		}
		f.SetCellValue(sheet, cell, name)
	}
	for i := 0; i < view.Len(); i++ {
		for j, value := range view.Row(i) {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				http.Error(w, "failed to build workbook", http.StatusInternalServerError)
				return
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename=filtered_data.xlsx`)
	if err := f.Write(w); err != nil {
		// Headers are already out; nothing sensible left to send.
		log.Printf("⚠️ xlsx export write failed: %v", err)
	}
}
