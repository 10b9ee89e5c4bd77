package gradebook

import (
	"context"
	"testing"
	"time"

	"github.com/schooltools/rankbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestGradebook(t *testing.T) *SQLGradebook {
	t.Helper()
	gb, err := New(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = gb.Close() })
	return gb
}

func TestNewUnsupportedBackend(t *testing.T) {
	_, err := New(schema.NoneBackend, "")
	assert.Error(t, err, "marks have to come from a real backend")
}

func TestFormulasRoundTrip(t *testing.T) {
	gb := openTestGradebook(t)

	formula := schema.Formula{
		ID:          "standard",
		Name:        "Standard weighting",
		Description: "Midterm and endterm only",
		Weights: map[string]float64{
			schema.TestTypeMidterm: 0.3,
			schema.TestTypeEndterm: 0.7,
		},
		PassingScore: 50,
		IsActive:     true,
	}
	require.NoError(t, gb.PutFormula(formula))

	formulas, err := gb.Formulas(context.Background())
	require.NoError(t, err)
	require.Len(t, formulas, 1)
	assert.Equal(t, formula, formulas[0])

	// PutFormula replaces rather than duplicating.
	formula.PassingScore = 60
	require.NoError(t, gb.PutFormula(formula))
	formulas, err = gb.Formulas(context.Background())
	require.NoError(t, err)
	require.Len(t, formulas, 1)
	assert.Equal(t, 60.0, formulas[0].PassingScore)
}

func TestRosterFromStore(t *testing.T) {
	gb := openTestGradebook(t)

	require.NoError(t, gb.PutAssignment(schema.Assignment{
		ID: "A-MATH", TeacherID: "T001", SubjectID: "MATH",
		ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.FirstTerm,
	}))
	require.NoError(t, gb.PutAssignment(schema.Assignment{
		ID: "A-ENG", TeacherID: "T002", SubjectID: "ENG",
		ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.FirstTerm,
	}))
	// A different term must not leak into the roster.
	require.NoError(t, gb.PutAssignment(schema.Assignment{
		ID: "A-SCI", TeacherID: "T003", SubjectID: "SCI",
		ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.SecondTerm,
	}))

	for _, studentID := range []string{"S002", "S001"} {
		require.NoError(t, gb.Enroll("P7A", schema.FirstTerm, "2025/2026", studentID))
	}
	// Enrolling twice is a no-op.
	require.NoError(t, gb.Enroll("P7A", schema.FirstTerm, "2025/2026", "S001"))

	roster, err := gb.Roster(context.Background(), "P7A", schema.FirstTerm, "2025/2026")
	require.NoError(t, err)

	assert.Equal(t, []string{"S001", "S002"}, roster.StudentIDs)
	require.Len(t, roster.Assignments, 2)
	assert.Equal(t, "ENG", roster.Assignments[0].SubjectID, "assignments ordered by subject")
	assert.Equal(t, "MATH", roster.Assignments[1].SubjectID)
	assert.Equal(t, schema.FirstTerm, roster.Assignments[0].Term)
}

func TestMarksRoundTrip(t *testing.T) {
	gb := openTestGradebook(t)

	early := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 12, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, gb.PutMark(schema.AssessmentMark{
		AssignmentID: "A-MATH", StudentID: "S001",
		TestType: schema.TestTypeEndterm, TestDate: late,
		Score: 80, MaxScore: 100, Weight: 1,
	}))
	require.NoError(t, gb.PutMark(schema.AssessmentMark{
		AssignmentID: "A-MATH", StudentID: "S001",
		TestType: schema.TestTypeMidterm, TestDate: early,
		Score: 45, MaxScore: 50,
	}))
	// Another student's marks must stay separate.
	require.NoError(t, gb.PutMark(schema.AssessmentMark{
		AssignmentID: "A-MATH", StudentID: "S002",
		TestType: schema.TestTypeMidterm, TestDate: early,
		Score: 30, MaxScore: 50,
	}))

	marks, err := gb.Marks(context.Background(), "A-MATH", "S001")
	require.NoError(t, err)
	require.Len(t, marks, 2)

	assert.Equal(t, schema.TestTypeMidterm, marks[0].TestType, "marks ordered by test date")
	assert.True(t, marks[0].TestDate.Equal(early))
	assert.Equal(t, 45.0, marks[0].Score)
	assert.Equal(t, 50.0, marks[0].MaxScore)
	assert.Zero(t, marks[0].Weight)

	assert.Equal(t, schema.TestTypeEndterm, marks[1].TestType)
	assert.Equal(t, 1.0, marks[1].Weight)
}

func TestMarksEmpty(t *testing.T) {
	gb := openTestGradebook(t)
	marks, err := gb.Marks(context.Background(), "A-NONE", "S001")
	require.NoError(t, err)
	assert.Empty(t, marks)
}
