package core

import (
	"math"
	"testing"

	"github.com/schooltools/rankbook/schema"
)

// FuzzAggregateSubjectScore checks that any mark set either fails with
// an explicit error or aggregates to a score inside [0,100].
func FuzzAggregateSubjectScore(f *testing.F) {
	f.Add(60.0, 100.0, 80.0, 100.0, 0.3, 0.7)
	f.Add(0.0, 100.0, 100.0, 100.0, 1.0, 0.0)
	f.Add(45.0, 50.0, 12.0, 20.0, 0.5, 0.5)
	f.Add(-5.0, 100.0, 80.0, 100.0, 0.3, 0.7)
	f.Add(99.0, 100.0, 50.0, 0.0, 0.0, 0.0)

	f.Fuzz(func(t *testing.T, score1, max1, score2, max2, w1, w2 float64) {
		for _, v := range []float64{score1, max1, score2, max2, w1, w2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Skip("non-finite inputs are not representable marks")
			}
		}
		if w1 < 0 || w2 < 0 || w1+w2 <= 0 {
			t.Skip("formula weights outside the validated domain")
		}

		formula := &schema.Formula{
			ID:   "fuzz",
			Name: "Fuzz formula",
			Weights: map[string]float64{
				schema.TestTypeMidterm: w1,
				schema.TestTypeEndterm: w2,
			},
			PassingScore: 50,
		}
		marks := []schema.AssessmentMark{
			{AssignmentID: "A001", StudentID: "S001", TestType: schema.TestTypeMidterm, Score: score1, MaxScore: max1},
			{AssignmentID: "A001", StudentID: "S001", TestType: schema.TestTypeEndterm, Score: score2, MaxScore: max2},
		}

		result, count, err := AggregateSubjectScore(formula, marks)
		if err != nil {
			return // invalid marks must be rejected, not clamped
		}
		if result < 0 || result > 100 || result != result {
			t.Errorf("score %v escaped the [0,100] domain", result)
		}
		if count != len(marks) {
			t.Errorf("mark count %d, want %d", count, len(marks))
		}
	})
}
