package core

import (
	"testing"

	"github.com/schooltools/rankbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mark(testType string, score, maxScore float64) schema.AssessmentMark {
	return schema.AssessmentMark{
		AssignmentID: "A001",
		StudentID:    "S001",
		TestType:     testType,
		Score:        score,
		MaxScore:     maxScore,
	}
}

func TestAggregateSubjectScore(t *testing.T) {
	formula := standardFormula()

	tests := []struct {
		name      string
		marks     []schema.AssessmentMark
		wantScore float64
		wantCount int
	}{
		{
			// 0.3*60 + 0.7*80 = 74
			name: "both types present",
			marks: []schema.AssessmentMark{
				mark(schema.TestTypeMidterm, 60, 100),
				mark(schema.TestTypeEndterm, 80, 100),
			},
			wantScore: 74,
			wantCount: 2,
		},
		{
			// Only the midterm exists, so its weight renormalizes to 1.
			name:      "missing type redistributes weight",
			marks:     []schema.AssessmentMark{mark(schema.TestTypeMidterm, 60, 100)},
			wantScore: 60,
			wantCount: 1,
		},
		{
			// Scores normalize against max before weighting: 45/50 = 90%.
			name: "non-100 max score",
			marks: []schema.AssessmentMark{
				mark(schema.TestTypeMidterm, 45, 50),
				mark(schema.TestTypeEndterm, 80, 100),
			},
			wantScore: 0.3*90 + 0.7*80,
			wantCount: 2,
		},
		{
			// Two marks of the same type average within the type rather
			// than double-counting its formula weight.
			name: "repeat type averages",
			marks: []schema.AssessmentMark{
				mark(schema.TestTypeMidterm, 40, 100),
				mark(schema.TestTypeMidterm, 80, 100),
				mark(schema.TestTypeEndterm, 70, 100),
			},
			wantScore: 0.3*60 + 0.7*70,
			wantCount: 3,
		},
		{
			name:      "full marks",
			marks:     []schema.AssessmentMark{mark(schema.TestTypeMidterm, 100, 100)},
			wantScore: 100,
			wantCount: 1,
		},
		{
			name:      "zero score is valid",
			marks:     []schema.AssessmentMark{mark(schema.TestTypeEndterm, 0, 100)},
			wantScore: 0,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, count, err := AggregateSubjectScore(&formula, tt.marks)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScore, score, 1e-9)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestAggregateSubjectScorePerMarkWeights(t *testing.T) {
	formula := standardFormula()

	// A weight-2 quiz counts twice as much as a weight-1 quiz within the
	// Mid-term type: (2*90 + 1*60) / 3 = 80.
	heavy := mark(schema.TestTypeMidterm, 90, 100)
	heavy.Weight = 2
	light := mark(schema.TestTypeMidterm, 60, 100)
	light.Weight = 1

	score, count, err := AggregateSubjectScore(&formula, []schema.AssessmentMark{heavy, light})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 80, score, 1e-9)
}

func TestAggregateSubjectScoreEqualWeightFallback(t *testing.T) {
	formula := standardFormula()

	// Neither type carries a formula weight, so the graded types fall
	// back to an equal-weight mean: (40 + 80) / 2 = 60.
	marks := []schema.AssessmentMark{
		mark(schema.TestTypeQuiz, 40, 100),
		mark(schema.TestTypeAssignment, 80, 100),
	}
	score, _, err := AggregateSubjectScore(&formula, marks)
	require.NoError(t, err)
	assert.InDelta(t, 60, score, 1e-9)
}

func TestAggregateSubjectScoreErrors(t *testing.T) {
	formula := standardFormula()

	t.Run("no marks", func(t *testing.T) {
		_, _, err := AggregateSubjectScore(&formula, nil)
		assert.ErrorIs(t, err, ErrNoMarksAvailable)
	})

	t.Run("score above max", func(t *testing.T) {
		_, _, err := AggregateSubjectScore(&formula, []schema.AssessmentMark{mark(schema.TestTypeMidterm, 110, 100)})
		assert.ErrorIs(t, err, ErrInvalidMark)
	})

	t.Run("negative score", func(t *testing.T) {
		_, _, err := AggregateSubjectScore(&formula, []schema.AssessmentMark{mark(schema.TestTypeMidterm, -1, 100)})
		assert.ErrorIs(t, err, ErrInvalidMark)
	})

	t.Run("non-positive max score", func(t *testing.T) {
		_, _, err := AggregateSubjectScore(&formula, []schema.AssessmentMark{mark(schema.TestTypeMidterm, 0, 0)})
		assert.ErrorIs(t, err, ErrInvalidMark)
	})

	t.Run("one bad mark fails the subject", func(t *testing.T) {
		marks := []schema.AssessmentMark{
			mark(schema.TestTypeMidterm, 60, 100),
			mark(schema.TestTypeEndterm, 120, 100),
		}
		_, _, err := AggregateSubjectScore(&formula, marks)
		assert.ErrorIs(t, err, ErrInvalidMark, "bad marks must not be dropped silently")
	})
}
