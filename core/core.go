// Package core has core logic for aggregation, grading and ranking.
package core

import (
	"context"
	"fmt"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/internal/outwriter"
)

// ExecuteClassRank runs a full class pass, persists the finalized
// records when a result store is configured, and prints the ranking.
// It serves as the main entry point for the 'rank' command.
func ExecuteClassRank(ctx context.Context, cfg *contract.Config, gb contract.Gradebook, store contract.ResultStore) error {
	outwriter.PrintPassHeader(cfg)

	set, err := RunClassPass(ctx, cfg, gb)
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.RecordClassResults(set); err != nil {
			contract.LogWarn("Result persistence failed", err)
		}
	}

	return outwriter.WriteClassResults(set, cfg)
}

// ExecuteStudentResult runs the full class pass and prints the detailed
// breakdown for one student. The whole cohort is always computed so the
// student's class position reflects the same ranking every peer sees.
func ExecuteStudentResult(ctx context.Context, cfg *contract.Config, gb contract.Gradebook, store contract.ResultStore) error {
	set, err := RunClassPass(ctx, cfg, gb)
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.RecordClassResults(set); err != nil {
			contract.LogWarn("Result persistence failed", err)
		}
	}

	for i := range set.Results {
		if set.Results[i].StudentID == cfg.StudentID {
			return outwriter.WriteStudentResult(&set.Results[i], cfg)
		}
	}
	return fmt.Errorf("student %s is not enrolled in class %s for %s %s", cfg.StudentID, cfg.ClassID, cfg.Term, cfg.AcademicYear)
}

// ExecuteFormulas lists the gradebook's formula definitions together
// with their validation state, so an operator can see exactly which
// formula a pass would run under.
func ExecuteFormulas(ctx context.Context, cfg *contract.Config, gb contract.Gradebook) error {
	formulas, err := gb.Formulas(ctx)
	if err != nil {
		return fmt.Errorf("loading formulas: %w", err)
	}
	validity := make([]error, len(formulas))
	for i := range formulas {
		validity[i] = ValidateFormula(&formulas[i])
	}
	return outwriter.WriteFormulas(formulas, validity, cfg)
}

// ExecuteScale prints the grade scale a pass would classify under,
// including any `scale:` overrides from the config file.
func ExecuteScale(cfg *contract.Config) error {
	return outwriter.WriteScale(cfg.Scale, cfg)
}
