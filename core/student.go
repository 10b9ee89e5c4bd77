package core

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"
)

// AggregateStudentResult computes one student's pre-ranking term result
// from the cohort's subject assignments. Subjects with no marks are
// included in the breakdown as Incomplete and excluded from the
// total/average denominators. PositionInClass is left unset; ranking is
// a separate cohort-wide step.
func AggregateStudentResult(ctx context.Context, gb contract.Gradebook, formula *schema.Formula, scale schema.GradeScale, studentID string, roster *schema.Roster) (*schema.StudentResult, error) {
	result := &schema.StudentResult{
		StudentID:    studentID,
		AcademicYear: roster.AcademicYear,
		Term:         roster.Term,
		Subjects:     make([]schema.SubjectResult, 0, len(roster.Assignments)),
	}

	var gradedCount int
	for _, a := range roster.Assignments {
		marks, err := gb.Marks(ctx, a.ID, studentID)
		if err != nil {
			return nil, fmt.Errorf("loading marks for student %s, subject %s: %w", studentID, a.SubjectID, err)
		}

		subject := schema.SubjectResult{
			SubjectID:    a.SubjectID,
			TeacherID:    a.TeacherID,
			AssignmentID: a.ID,
		}

		score, count, err := AggregateSubjectScore(formula, marks)
		switch {
		case errors.Is(err, ErrNoMarksAvailable):
			subject.Status = schema.StatusIncomplete
		case err != nil:
			return nil, err
		default:
			subject.Status = schema.StatusRanked
			subject.Score = score
			subject.Grade = scale.Classify(score)
			subject.MarkCount = count
			result.TotalScore += score
			gradedCount++
		}
		result.Subjects = append(result.Subjects, subject)
	}

	// Deterministic breakdown order regardless of roster ordering.
	sort.Slice(result.Subjects, func(i, j int) bool {
		return result.Subjects[i].SubjectID < result.Subjects[j].SubjectID
	})

	result.GradeCounts = schema.CountGrades(result.Subjects)

	switch {
	case gradedCount == 0:
		// No gradable data at all; excluded from ranking but still
		// counted in the cohort size for peers.
		result.Status = schema.StatusNoData
		result.TotalScore = 0
	case gradedCount < len(result.Subjects):
		result.Status = schema.StatusIncomplete
		result.AverageScore = result.TotalScore / float64(gradedCount)
	default:
		result.Status = schema.StatusRanked
		result.AverageScore = result.TotalScore / float64(gradedCount)
	}

	if gradedCount > 0 {
		result.Remarks = schema.RemarkForAverage(result.AverageScore, scale)
	}

	return result, nil
}
