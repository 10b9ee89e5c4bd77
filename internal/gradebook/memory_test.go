package gradebook

import (
	"context"
	"testing"

	"github.com/schooltools/rankbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGradebook(t *testing.T) {
	gb := NewMemory()

	gb.AddFormula(schema.Formula{ID: "b-formula", Name: "B"})
	gb.AddFormula(schema.Formula{ID: "a-formula", Name: "A"})
	gb.AddAssignment(schema.Assignment{ID: "A-MATH", SubjectID: "MATH", ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.FirstTerm})
	gb.AddAssignment(schema.Assignment{ID: "A-ENG", SubjectID: "ENG", ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.FirstTerm})
	gb.AddAssignment(schema.Assignment{ID: "A-OTHER", SubjectID: "SCI", ClassID: "P7B", AcademicYear: "2025/2026", Term: schema.FirstTerm})
	gb.Enroll("P7A", schema.FirstTerm, "2025/2026", "S002")
	gb.Enroll("P7A", schema.FirstTerm, "2025/2026", "S001")
	gb.AddMark(schema.AssessmentMark{AssignmentID: "A-MATH", StudentID: "S001", TestType: schema.TestTypeMidterm, Score: 60, MaxScore: 100})

	formulas, err := gb.Formulas(context.Background())
	require.NoError(t, err)
	require.Len(t, formulas, 2)
	assert.Equal(t, "a-formula", formulas[0].ID, "formulas listed in id order")

	roster, err := gb.Roster(context.Background(), "P7A", schema.FirstTerm, "2025/2026")
	require.NoError(t, err)
	assert.Equal(t, []string{"S001", "S002"}, roster.StudentIDs)
	require.Len(t, roster.Assignments, 2, "other classes stay out of the roster")
	assert.Equal(t, "ENG", roster.Assignments[0].SubjectID)

	marks, err := gb.Marks(context.Background(), "A-MATH", "S001")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, 60.0, marks[0].Score)

	assert.NoError(t, gb.Close())
}

func TestMemoryGradebookMarksAreCopies(t *testing.T) {
	gb := NewMemory()
	gb.AddMark(schema.AssessmentMark{AssignmentID: "A001", StudentID: "S001", TestType: schema.TestTypeQuiz, Score: 50, MaxScore: 100})

	marks, err := gb.Marks(context.Background(), "A001", "S001")
	require.NoError(t, err)
	marks[0].Score = 99

	again, err := gb.Marks(context.Background(), "A001", "S001")
	require.NoError(t, err)
	assert.Equal(t, 50.0, again[0].Score, "callers must not mutate stored marks")
}

func TestMemoryGradebookEmptyRoster(t *testing.T) {
	gb := NewMemory()
	roster, err := gb.Roster(context.Background(), "P7A", schema.FirstTerm, "2025/2026")
	require.NoError(t, err)
	assert.Empty(t, roster.StudentIDs)
	assert.Empty(t, roster.Assignments)
}
