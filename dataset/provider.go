package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "embed"
)

// ============================================================================
// PROVIDER — Single loaded dataset, shared read-only across requests
// ============================================================================
// Load() runs once at process start and is fatal for the caller on error:
// the process must not serve with a nil dataset. After Load, every
// Snapshot() call returns the same *Table instance — concurrent readers
// are safe because no writer exists post-load.
// ============================================================================

// planetsCSV is the bundled exoplanet discovery table
// (method, number, orbital_period, mass, distance, year).
//
//go:embed planets.csv
var planetsCSV []byte

const bundledName = "planets"

// Provider holds the loaded dataset and exposes its schema and shape.
type Provider struct {
	path  string // "" = bundled dataset
	table *Table
}

// NewProvider creates a provider. An empty path selects the bundled
// planets dataset; otherwise path names a CSV file with a header row.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Load populates the in-memory table. Calling Load twice is an error —
// the dataset has no reload lifecycle.
func (p *Provider) Load() error {
	if p.table != nil {
		return fmt.Errorf("dataset already loaded")
	}

	name := bundledName
	data := planetsCSV
	if p.path != "" {
		b, err := os.ReadFile(p.path)
		if err != nil {
			return fmt.Errorf("read dataset %s: %w", p.path, err)
		}
		data = b
		name = strings.TrimSuffix(filepath.Base(p.path), filepath.Ext(p.path))
	}

	table, err := ParseTable(name, data)
	if err != nil {
		return fmt.Errorf("parse dataset %s: %w", name, err)
	}

	p.table = table
	rows, cols := table.Shape()
	log.Printf("📊 Loaded dataset %q: %d rows × %d columns %v", name, rows, cols, table.Columns())
	return nil
}

// Name returns the dataset name.
func (p *Provider) Name() string { return p.table.name }

// Columns returns the ordered column names.
func (p *Provider) Columns() []string { return p.table.Columns() }

// Shape returns (row count, column count).
func (p *Provider) Shape() (int, int) { return p.table.Shape() }

// Snapshot returns the read-only table. Same instance on every call.
func (p *Provider) Snapshot() *Table { return p.table }

// ============================================================================
// CSV PARSING
// ============================================================================

// ParseTable builds a Table from raw CSV bytes. The first record is the
// header; malformed data rows are skipped rather than failing the load.
func ParseTable(name string, data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("CSV has no columns")
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	columns := inferKinds(headers, rows)

	t := &Table{
		name:    name,
		columns: columns,
		index:   make(map[string]int, len(columns)),
		cells:   make([][]string, len(columns)),
		numbers: make([][]float64, len(columns)),
		rows:    len(rows),
	}
	for i, c := range columns {
		t.index[c.Name] = i
		t.cells[i] = make([]string, len(rows))
		if c.Kind != KindString {
			t.numbers[i] = make([]float64, len(rows))
		}
	}

	for r, row := range rows {
		for i := range columns {
			val := ""
			if i < len(row) {
				val = strings.TrimSpace(row[i])
			}
			t.cells[i][r] = val
			if t.numbers[i] == nil {
				continue
			}
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				t.numbers[i][r] = f
			} else {
				t.numbers[i][r] = math.NaN()
			}
		}
	}

	return t, nil
}
