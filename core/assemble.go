package core

import (
	"fmt"
	"time"

	"github.com/schooltools/rankbook/schema"
)

// AssembleResults freezes a ranked cohort into its final shape. No
// further computation happens here; the assembler only validates the
// invariants downstream consumers rely on and stamps issue metadata.
func AssembleResults(results []schema.StudentResult, scale schema.GradeScale, issuedAt time.Time) ([]schema.StudentResult, error) {
	for i := range results {
		r := &results[i]
		if err := checkResultShape(r); err != nil {
			return nil, err
		}
		r.DateIssued = issuedAt
		if r.Remarks == "" && r.Status != schema.StatusNoData {
			r.Remarks = schema.RemarkForAverage(r.AverageScore, scale)
		}
	}
	return results, nil
}

// checkResultShape guards the output invariants. A violation here is a
// bug in the aggregation or ranking steps, not bad input data.
func checkResultShape(r *schema.StudentResult) error {
	if r.TotalStudentsInClass < 0 || r.PositionInClass < 0 {
		return fmt.Errorf("student %s: negative rank fields (position %d of %d)", r.StudentID, r.PositionInClass, r.TotalStudentsInClass)
	}
	if r.PositionInClass > r.TotalStudentsInClass {
		return fmt.Errorf("student %s: position %d exceeds class size %d", r.StudentID, r.PositionInClass, r.TotalStudentsInClass)
	}
	switch r.Status {
	case schema.StatusNoData:
		if r.PositionInClass != 0 {
			return fmt.Errorf("student %s: No Data result carries rank %d", r.StudentID, r.PositionInClass)
		}
	case schema.StatusRanked, schema.StatusIncomplete:
		if len(r.Subjects) == 0 {
			return fmt.Errorf("student %s: %s result has an empty subject list", r.StudentID, r.Status)
		}
		if r.PositionInClass == 0 {
			return fmt.Errorf("student %s: %s result was never ranked", r.StudentID, r.Status)
		}
	default:
		return fmt.Errorf("student %s: unknown status %q", r.StudentID, r.Status)
	}
	if r.TotalScore < 0 || r.AverageScore < 0 || r.AverageScore > 100 {
		return fmt.Errorf("student %s: scores out of range (total %.2f, average %.2f)", r.StudentID, r.TotalScore, r.AverageScore)
	}
	return nil
}
