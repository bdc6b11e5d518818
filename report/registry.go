package report

import (
	"errors"
	"fmt"

	"github.com/orrery-org/orrery/dataset"
)

// ============================================================================
// REGISTRY — closed id → builder mapping
// ============================================================================
// Report ids are a small closed set; the table keeps dispatch flat and
// lets each builder be unit-tested in isolation.
// ============================================================================

// Builder computes one report from the full dataset. Stateless.
type Builder func(*dataset.Table) Result

// ErrInvalidQuestion is returned for ids outside the registry.
var ErrInvalidQuestion = errors.New("invalid question id")

// Question identifies one report for listing pages.
type Question struct {
	ID   int
	Name string
}

var registry = map[int]struct {
	name  string
	build Builder
}{
	1: {"Which years had the most planet discoveries?", DiscoveriesPerYear},
	2: {"How often is each detection method used?", CountsByMethod},
	3: {"How are orbital periods distributed?", OrbitalPeriodDistribution},
	4: {"How are planet masses distributed?", MassDistribution},
	5: {"Which detection methods find the heaviest planets?", MethodVsMass},
}

// Questions lists the available reports in id order.
func Questions() []Question {
	out := make([]Question, 0, len(registry))
	for id := 1; id <= len(registry); id++ {
		out = append(out, Question{ID: id, Name: registry[id].name})
	}
	return out
}

// Run executes the report with the given id against the table.
// Ids outside [1,len(registry)] fail with ErrInvalidQuestion.
func Run(id int, t *dataset.Table) (Result, error) {
	entry, ok := registry[id]
	if !ok {
		return Result{}, fmt.Errorf("%w: %d (valid range 1-%d)", ErrInvalidQuestion, id, len(registry))
	}
	return entry.build(t), nil
}
