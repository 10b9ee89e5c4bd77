// Package schema has configs, models and shared constants for all parts of rankbook.
package schema

import "time"

// Formula defines the site-configurable weighting used to combine raw
// assessment marks into a single subject score. Weights do not have to
// sum to 1; the engine renormalizes them over the assessment types that
// are actually present before use.
type Formula struct {
	ID           string             `json:"id" validate:"required"`
	Name         string             `json:"name" validate:"required"`
	Description  string             `json:"description,omitempty"`
	Weights      map[string]float64 `json:"weights" validate:"required,min=1"`
	PassingScore float64            `json:"passing_score" validate:"gte=0,lte=100"`
	IsActive     bool               `json:"is_active"`
}

// Assignment is the teacher-subject-class-term-year tuple under which
// marks are recorded.
type Assignment struct {
	ID           string `json:"id"`
	TeacherID    string `json:"teacher_id"`
	SubjectID    string `json:"subject_id"`
	ClassID      string `json:"class_id"`
	AcademicYear string `json:"academic_year"`
	Term         Term   `json:"term"`
}

// AssessmentMark is a single raw mark entered by a teacher for one
// student under one assignment. Marks are read-only snapshots at
// computation time; recomputation re-reads current marks.
type AssessmentMark struct {
	AssignmentID string    `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	TestType     string    `json:"test_type"` // e.g. "Mid-term", "Quiz"
	TestDate     time.Time `json:"test_date"`
	Score        float64   `json:"score"`
	MaxScore     float64   `json:"max_score"`
	Weight       float64   `json:"weight,omitempty"` // per-mark override; <= 0 means DefaultMarkWeight
}

// EffectiveWeight returns the per-mark weight, applying the default
// when no override was recorded.
func (m AssessmentMark) EffectiveWeight() float64 {
	if m.Weight <= 0 {
		return DefaultMarkWeight
	}
	return m.Weight
}

// Roster describes one class cohort for one term and year: the enrolled
// students and the subject assignments they are graded under.
type Roster struct {
	ClassID      string       `json:"class_id"`
	AcademicYear string       `json:"academic_year"`
	Term         Term         `json:"term"`
	StudentIDs   []string     `json:"student_ids"`
	Assignments  []Assignment `json:"assignments"`
}

// SubjectResult is the derived per-subject breakdown entry of a
// student's term result.
type SubjectResult struct {
	SubjectID    string  `json:"subject_id"`
	TeacherID    string  `json:"teacher_id"`
	AssignmentID string  `json:"assignment_id"`
	Score        float64 `json:"score"`      // normalized 0-100; 0 when Incomplete
	Grade        string  `json:"grade"`      // letter grade; empty when Incomplete
	Status       Status  `json:"status"`     // Ranked or Incomplete
	MarkCount    int     `json:"mark_count"` // contributing marks
	Remarks      string  `json:"remarks,omitempty"`
}

// StudentResult is the final, immutable record for one student in one
// term. It is always replaced as a whole; ranking fields are populated
// only after the whole cohort has been aggregated.
type StudentResult struct {
	StudentID            string          `json:"student_id"`
	AcademicYear         string          `json:"academic_year"`
	Term                 Term            `json:"term"`
	Subjects             []SubjectResult `json:"subject_results"`
	TotalScore           float64         `json:"total_score"`
	AverageScore         float64         `json:"average_score"`
	GradeCounts          map[string]int  `json:"grade_counts"`
	PositionInClass      int             `json:"position_in_class"` // 0 until ranked
	TotalStudentsInClass int             `json:"total_students_in_class"`
	Status               Status          `json:"status"`
	Remarks              string          `json:"remarks,omitempty"`
	DateIssued           time.Time       `json:"date_issued"`
}

// GradedSubjects returns the number of subjects contributing to the
// total/average denominators.
func (r *StudentResult) GradedSubjects() int {
	n := 0
	for _, s := range r.Subjects {
		if s.Status == StatusRanked {
			n++
		}
	}
	return n
}

// ClassResultSet is the output of one full computation pass over a
// class cohort.
type ClassResultSet struct {
	PassID       string          `json:"pass_id"`
	ClassID      string          `json:"class_id"`
	AcademicYear string          `json:"academic_year"`
	Term         Term            `json:"term"`
	FormulaID    string          `json:"formula_id"`
	Results      []StudentResult `json:"results"`
	Duration     time.Duration   `json:"duration"`
}
