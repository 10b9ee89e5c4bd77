package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/internal/gradebook"
	"github.com/schooltools/rankbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func passConfig() *contract.Config {
	return &contract.Config{
		ClassID:        "P7A",
		Term:           schema.FirstTerm,
		AcademicYear:   "2025/2026",
		FormulaID:      schema.ActiveFormulaID,
		Workers:        4,
		StudentTimeout: 5 * time.Second,
		Scale:          schema.DefaultGradeScale(),
	}
}

// seedClass builds a three-student cohort with two subjects where S003
// outscores S002 who outscores S001.
func seedClass() *gradebook.MemoryGradebook {
	gb := gradebook.NewMemory()
	gb.AddFormula(standardFormula())
	gb.AddAssignment(schema.Assignment{ID: "A-MATH", TeacherID: "T001", SubjectID: "MATH", ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.FirstTerm})
	gb.AddAssignment(schema.Assignment{ID: "A-ENG", TeacherID: "T002", SubjectID: "ENG", ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.FirstTerm})

	for i, studentID := range []string{"S001", "S002", "S003"} {
		gb.Enroll("P7A", schema.FirstTerm, "2025/2026", studentID)
		base := float64(50 + 15*i)
		addSubjectMarks(gb, "A-MATH", studentID, base, base+5)
		addSubjectMarks(gb, "A-ENG", studentID, base-5, base)
	}
	return gb
}

func TestRunClassPass(t *testing.T) {
	gb := seedClass()
	set, err := RunClassPass(context.Background(), passConfig(), gb)
	require.NoError(t, err)

	assert.NotEmpty(t, set.PassID)
	assert.Equal(t, "P7A", set.ClassID)
	assert.Equal(t, "standard", set.FormulaID, "active resolves to the flagged formula")
	require.Len(t, set.Results, 3)

	// Descending average, positions 1..3, full cohort count everywhere.
	for i, want := range []string{"S003", "S002", "S001"} {
		r := set.Results[i]
		assert.Equal(t, want, r.StudentID)
		assert.Equal(t, i+1, r.PositionInClass)
		assert.Equal(t, 3, r.TotalStudentsInClass)
		assert.Equal(t, schema.StatusRanked, r.Status)
		assert.False(t, r.DateIssued.IsZero())
	}
}

func TestRunClassPassIsIdempotent(t *testing.T) {
	gb := seedClass()
	cfg := passConfig()

	first, err := RunClassPass(context.Background(), cfg, gb)
	require.NoError(t, err)
	second, err := RunClassPass(context.Background(), cfg, gb)
	require.NoError(t, err)

	assert.NotEqual(t, first.PassID, second.PassID, "each pass gets a fresh id")
	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].StudentID, second.Results[i].StudentID)
		assert.Equal(t, first.Results[i].PositionInClass, second.Results[i].PositionInClass)
		assert.InDelta(t, first.Results[i].AverageScore, second.Results[i].AverageScore, 1e-9)
	}
}

func TestRunClassPassNoDataStudent(t *testing.T) {
	gb := seedClass()
	gb.Enroll("P7A", schema.FirstTerm, "2025/2026", "S004") // enrolled, never assessed

	set, err := RunClassPass(context.Background(), passConfig(), gb)
	require.NoError(t, err)
	require.Len(t, set.Results, 4)

	last := set.Results[3]
	assert.Equal(t, "S004", last.StudentID)
	assert.Equal(t, schema.StatusNoData, last.Status)
	assert.Zero(t, last.PositionInClass, "No Data students hold no rank")
	assert.Equal(t, 4, last.TotalStudentsInClass, "but still count toward class size")

	for _, r := range set.Results[:3] {
		assert.Equal(t, 4, r.TotalStudentsInClass)
	}
}

func TestRunClassPassInlineFormula(t *testing.T) {
	gb := seedClass()
	cfg := passConfig()
	cfg.InlineFormula = &schema.Formula{
		ID:   "inline",
		Name: "Endterm only",
		Weights: map[string]float64{
			schema.TestTypeEndterm: 1,
		},
		PassingScore: 50,
	}

	set, err := RunClassPass(context.Background(), cfg, gb)
	require.NoError(t, err)
	assert.Equal(t, "inline", set.FormulaID, "inline override wins over gradebook formulas")

	// S003 endterm scores: MATH 85, ENG 80 -> average 82.5.
	assert.InDelta(t, 82.5, set.Results[0].AverageScore, 1e-9)
}

func TestRunClassPassConfigurationErrors(t *testing.T) {
	t.Run("unknown formula id", func(t *testing.T) {
		cfg := passConfig()
		cfg.FormulaID = "missing"
		_, err := RunClassPass(context.Background(), cfg, seedClass())
		assert.ErrorIs(t, err, ErrFormulaNotFound)
	})

	t.Run("empty class", func(t *testing.T) {
		gb := gradebook.NewMemory()
		gb.AddFormula(standardFormula())
		_, err := RunClassPass(context.Background(), passConfig(), gb)
		assert.ErrorContains(t, err, "no enrolled students")
	})

	t.Run("invalid inline formula", func(t *testing.T) {
		cfg := passConfig()
		cfg.InlineFormula = &schema.Formula{ID: "inline", Name: "Broken", Weights: map[string]float64{schema.TestTypeFinal: -1}}
		_, err := RunClassPass(context.Background(), cfg, seedClass())
		assert.ErrorIs(t, err, ErrInvalidFormula)
	})
}

func TestRunClassPassStudentFailureDowngrades(t *testing.T) {
	// One student's marks fail to load. The rest of the cohort must rank
	// normally while the failed student becomes an explicit No Data row.
	roster := &schema.Roster{
		ClassID:      "P7A",
		AcademicYear: "2025/2026",
		Term:         schema.FirstTerm,
		StudentIDs:   []string{"S001", "S002"},
		Assignments: []schema.Assignment{
			{ID: "A-MATH", TeacherID: "T001", SubjectID: "MATH", ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.FirstTerm},
		},
	}
	goodMarks := []schema.AssessmentMark{
		{AssignmentID: "A-MATH", StudentID: "S001", TestType: schema.TestTypeMidterm, Score: 70, MaxScore: 100},
	}

	gb := &gradebook.MockGradebook{}
	gb.On("Formulas", mock.Anything).Return([]schema.Formula{standardFormula()}, nil)
	gb.On("Roster", mock.Anything, "P7A", schema.FirstTerm, "2025/2026").Return(roster, nil)
	gb.On("Marks", mock.Anything, "A-MATH", "S001").Return(goodMarks, nil)
	gb.On("Marks", mock.Anything, "A-MATH", "S002").Return(nil, errors.New("disk failure"))

	set, err := RunClassPass(context.Background(), passConfig(), gb)
	require.NoError(t, err)
	require.Len(t, set.Results, 2)

	assert.Equal(t, "S001", set.Results[0].StudentID)
	assert.Equal(t, schema.StatusRanked, set.Results[0].Status)
	assert.Equal(t, 1, set.Results[0].PositionInClass)

	assert.Equal(t, "S002", set.Results[1].StudentID)
	assert.Equal(t, schema.StatusNoData, set.Results[1].Status)
	assert.Zero(t, set.Results[1].PositionInClass)
	gb.AssertExpectations(t)
}
