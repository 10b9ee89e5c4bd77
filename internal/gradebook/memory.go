package gradebook

import (
	"context"
	"sort"
	"sync"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"
)

// markKey identifies the mark bucket for one student under one assignment.
type markKey struct {
	assignmentID string
	studentID    string
}

// MemoryGradebook is an in-memory Gradebook for tests and benchmarks.
type MemoryGradebook struct {
	mu          sync.RWMutex
	formulas    map[string]schema.Formula
	assignments map[string]schema.Assignment
	enrollments map[string][]string // class|term|year -> student IDs
	marks       map[markKey][]schema.AssessmentMark
}

var _ contract.Gradebook = &MemoryGradebook{} // Compile-time check

// NewMemory creates an empty in-memory Gradebook.
func NewMemory() *MemoryGradebook {
	return &MemoryGradebook{
		formulas:    make(map[string]schema.Formula),
		assignments: make(map[string]schema.Assignment),
		enrollments: make(map[string][]string),
		marks:       make(map[markKey][]schema.AssessmentMark),
	}
}

func rosterKey(classID string, term schema.Term, year string) string {
	return classID + "|" + string(term) + "|" + year
}

// AddFormula registers a formula.
func (g *MemoryGradebook) AddFormula(formula schema.Formula) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.formulas[formula.ID] = formula
}

// AddAssignment registers a teacher-subject assignment.
func (g *MemoryGradebook) AddAssignment(assignment schema.Assignment) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.assignments[assignment.ID] = assignment
}

// Enroll registers a student in a class cohort.
func (g *MemoryGradebook) Enroll(classID string, term schema.Term, year, studentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := rosterKey(classID, term, year)
	g.enrollments[key] = append(g.enrollments[key], studentID)
}

// AddMark records one raw assessment mark.
func (g *MemoryGradebook) AddMark(mark schema.AssessmentMark) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := markKey{mark.AssignmentID, mark.StudentID}
	g.marks[key] = append(g.marks[key], mark)
}

// Formulas implements the Gradebook interface.
func (g *MemoryGradebook) Formulas(_ context.Context) ([]schema.Formula, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	formulas := make([]schema.Formula, 0, len(g.formulas))
	for _, formula := range g.formulas {
		formulas = append(formulas, formula)
	}
	sort.Slice(formulas, func(i, j int) bool { return formulas[i].ID < formulas[j].ID })
	return formulas, nil
}

// Roster implements the Gradebook interface.
func (g *MemoryGradebook) Roster(_ context.Context, classID string, term schema.Term, year string) (*schema.Roster, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	roster := &schema.Roster{
		ClassID:      classID,
		AcademicYear: year,
		Term:         term,
	}
	roster.StudentIDs = append(roster.StudentIDs, g.enrollments[rosterKey(classID, term, year)]...)
	sort.Strings(roster.StudentIDs)

	for _, assignment := range g.assignments {
		if assignment.ClassID == classID && assignment.Term == term && assignment.AcademicYear == year {
			roster.Assignments = append(roster.Assignments, assignment)
		}
	}
	sort.Slice(roster.Assignments, func(i, j int) bool {
		return roster.Assignments[i].SubjectID < roster.Assignments[j].SubjectID
	})

	return roster, nil
}

// Marks implements the Gradebook interface.
func (g *MemoryGradebook) Marks(_ context.Context, assignmentID, studentID string) ([]schema.AssessmentMark, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	stored := g.marks[markKey{assignmentID, studentID}]
	marks := make([]schema.AssessmentMark, len(stored))
	copy(marks, stored)
	return marks, nil
}

// Close implements the Gradebook interface.
func (g *MemoryGradebook) Close() error {
	return nil
}
