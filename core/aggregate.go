package core

import (
	"fmt"

	"github.com/schooltools/rankbook/schema"
)

// AggregateSubjectScore combines a student's raw marks for one subject
// assignment into a single normalized score on the 0-100 scale.
//
// Marks are grouped by assessment type and each type contributes its
// weighted mean percentage (per-mark weight overrides apply within a
// type, so two quizzes average rather than sum). The formula's weights
// are then restricted to the types actually present and renormalized to
// sum to 1, so a missing assessment type redistributes its weight
// proportionally among the graded types instead of silently zeroing the
// student's score.
//
// Returns the normalized score and the number of contributing marks.
func AggregateSubjectScore(formula *schema.Formula, marks []schema.AssessmentMark) (float64, int, error) {
	if len(marks) == 0 {
		return 0, 0, ErrNoMarksAvailable
	}

	// --- 1. Per-type weighted mean percentage ---
	type typeAccum struct {
		weightedPct float64
		weightSum   float64
	}
	byType := make(map[string]*typeAccum)
	for _, m := range marks {
		if m.MaxScore <= 0 {
			return 0, 0, fmt.Errorf("%w: student %s, type %q: max score %.2f must be positive", ErrInvalidMark, m.StudentID, m.TestType, m.MaxScore)
		}
		if m.Score < 0 || m.Score > m.MaxScore {
			return 0, 0, fmt.Errorf("%w: student %s, type %q: score %.2f outside [0, %.2f]", ErrInvalidMark, m.StudentID, m.TestType, m.Score, m.MaxScore)
		}
		acc := byType[m.TestType]
		if acc == nil {
			acc = &typeAccum{}
			byType[m.TestType] = acc
		}
		w := m.EffectiveWeight()
		acc.weightedPct += w * (m.Score / m.MaxScore) * 100.0
		acc.weightSum += w
	}

	means := make(map[string]float64, len(byType))
	for label, acc := range byType {
		means[label] = acc.weightedPct / acc.weightSum
	}

	// --- 2. Renormalize formula weights over present types ---
	var weightSum float64
	for label := range means {
		weightSum += formula.Weights[label]
	}

	var score float64
	if weightSum > 0 {
		for label, mean := range means {
			score += (formula.Weights[label] / weightSum) * mean
		}
	} else {
		// None of the graded types carries a formula weight. The student
		// was still assessed, so fall back to an equal-weight mean rather
		// than reporting Incomplete or an undefined score.
		for _, mean := range means {
			score += mean / float64(len(means))
		}
	}

	return clampScore(score), len(marks), nil
}

// clampScore keeps floating-point accumulation inside the 0-100 domain.
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
