package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schooltools/rankbook/core/algo"
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"
)

// RunClassPass executes one full computation pass over a class cohort:
// formula resolution, per-student aggregation in a bounded worker pool,
// the ranking barrier, and final assembly.
//
// The formula is resolved once and held fixed for the whole pass so all
// students are compared under identical weights. Per-student failures
// and timeouts never block the rest of the cohort; they produce
// explicit No Data markers so positions stay deterministic across
// retries. Configuration errors abort the pass before any worker runs.
func RunClassPass(ctx context.Context, cfg *contract.Config, gb contract.Gradebook) (*schema.ClassResultSet, error) {
	start := time.Now()

	formula, err := resolvePassFormula(ctx, cfg, gb)
	if err != nil {
		return nil, err
	}

	roster, err := gb.Roster(ctx, cfg.ClassID, cfg.Term, cfg.AcademicYear)
	if err != nil {
		return nil, fmt.Errorf("loading roster for class %s: %w", cfg.ClassID, err)
	}
	if len(roster.StudentIDs) == 0 {
		return nil, fmt.Errorf("class %s has no enrolled students for %s %s", cfg.ClassID, cfg.Term, cfg.AcademicYear)
	}

	results := aggregateCohort(ctx, cfg, gb, formula, roster)

	// Ranking barrier: every student has a result or a No Data marker
	// by this point.
	ranked := algo.RankCohort(results)

	assembled, err := AssembleResults(ranked, cfg.Scale, time.Now())
	if err != nil {
		return nil, fmt.Errorf("assembling results: %w", err)
	}

	return &schema.ClassResultSet{
		PassID:       uuid.NewString(),
		ClassID:      cfg.ClassID,
		AcademicYear: cfg.AcademicYear,
		Term:         cfg.Term,
		FormulaID:    formula.ID,
		Results:      assembled,
		Duration:     time.Since(start),
	}, nil
}

// resolvePassFormula picks the formula for the pass: the inline config
// override when present, otherwise the gradebook formula matching
// cfg.FormulaID (which may be "active").
func resolvePassFormula(ctx context.Context, cfg *contract.Config, gb contract.Gradebook) (*schema.Formula, error) {
	if cfg.InlineFormula != nil {
		if err := ValidateFormula(cfg.InlineFormula); err != nil {
			return nil, err
		}
		return cfg.InlineFormula, nil
	}
	formulas, err := gb.Formulas(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading formulas: %w", err)
	}
	return NewFormulaRegistry(formulas).Resolve(cfg.FormulaID)
}

// aggregateCohort processes all students in parallel using a worker
// pool. Each student's computation reads only its own marks plus the
// shared read-only formula, so no synchronization beyond the channels
// is needed.
func aggregateCohort(ctx context.Context, cfg *contract.Config, gb contract.Gradebook, formula *schema.Formula, roster *schema.Roster) []schema.StudentResult {
	studentCh := make(chan string, len(roster.StudentIDs))
	resultCh := make(chan schema.StudentResult, len(roster.StudentIDs))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for studentID := range studentCh {
				resultCh <- aggregateOneStudent(ctx, cfg, gb, formula, studentID, roster)
			}
		})
	}

	for _, id := range roster.StudentIDs {
		studentCh <- id
	}
	close(studentCh)

	wg.Wait()
	close(resultCh)

	results := make([]schema.StudentResult, 0, len(roster.StudentIDs))
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}

// aggregateOneStudent runs the per-student aggregation under its
// timeout. Any failure downgrades the student to an explicit No Data
// marker for this pass; the next pass retries from current marks.
func aggregateOneStudent(ctx context.Context, cfg *contract.Config, gb contract.Gradebook, formula *schema.Formula, studentID string, roster *schema.Roster) schema.StudentResult {
	studentCtx, cancel := context.WithTimeout(ctx, cfg.StudentTimeout)
	defer cancel()

	result, err := AggregateStudentResult(studentCtx, gb, formula, cfg.Scale, studentID, roster)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Aggregation failed for student %s, treating as No Data", studentID), err)
		return schema.StudentResult{
			StudentID:    studentID,
			AcademicYear: roster.AcademicYear,
			Term:         roster.Term,
			Subjects:     []schema.SubjectResult{},
			GradeCounts:  map[string]int{},
			Status:       schema.StatusNoData,
		}
	}
	return *result
}
