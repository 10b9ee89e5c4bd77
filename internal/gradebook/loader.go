package gradebook

import (
	"encoding/json"
	"fmt"

	"github.com/schooltools/rankbook/schema"
)

// PutFormula inserts or replaces a grading formula.
func (g *SQLGradebook) PutFormula(formula schema.Formula) error {
	weightsJSON, err := json.Marshal(formula.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}

	if err := g.deleteByID(formulasTable, "formula_id", formula.ID); err != nil {
		return err
	}

	var query string
	switch g.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (formula_id, name, description, weights, passing_score, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, quoteTableName(formulasTable, g.backend))
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (formula_id, name, description, weights, passing_score, is_active)
			VALUES (?, ?, ?, ?, ?, ?)
		`, quoteTableName(formulasTable, g.backend))
	}
	_, err = g.db.Exec(query, formula.ID, formula.Name, formula.Description,
		string(weightsJSON), formula.PassingScore, formula.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert formula %s: %w", formula.ID, err)
	}

	return nil
}

// PutAssignment inserts or replaces a teacher-subject assignment.
func (g *SQLGradebook) PutAssignment(assignment schema.Assignment) error {
	if err := g.deleteByID(assignmentsTable, "assignment_id", assignment.ID); err != nil {
		return err
	}

	var query string
	switch g.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (assignment_id, teacher_id, subject_id, class_id, academic_year, term)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, quoteTableName(assignmentsTable, g.backend))
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (assignment_id, teacher_id, subject_id, class_id, academic_year, term)
			VALUES (?, ?, ?, ?, ?, ?)
		`, quoteTableName(assignmentsTable, g.backend))
	}
	_, err := g.db.Exec(query, assignment.ID, assignment.TeacherID, assignment.SubjectID,
		assignment.ClassID, assignment.AcademicYear, string(assignment.Term))
	if err != nil {
		return fmt.Errorf("failed to insert assignment %s: %w", assignment.ID, err)
	}

	return nil
}

// Enroll registers a student in a class for one term and year.
func (g *SQLGradebook) Enroll(classID string, term schema.Term, year, studentID string) error {
	var query string
	switch g.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (class_id, academic_year, term, student_id)
			VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING
		`, quoteTableName(enrollmentsTable, g.backend))
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT IGNORE INTO %s (class_id, academic_year, term, student_id)
			VALUES (?, ?, ?, ?)
		`, quoteTableName(enrollmentsTable, g.backend))
	default: // SQLite
		query = fmt.Sprintf(`
			INSERT OR IGNORE INTO %s (class_id, academic_year, term, student_id)
			VALUES (?, ?, ?, ?)
		`, quoteTableName(enrollmentsTable, g.backend))
	}
	_, err := g.db.Exec(query, classID, year, string(term), studentID)
	if err != nil {
		return fmt.Errorf("failed to enroll student %s: %w", studentID, err)
	}

	return nil
}

// PutMark inserts one raw assessment mark.
func (g *SQLGradebook) PutMark(mark schema.AssessmentMark) error {
	var query string
	switch g.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (assignment_id, student_id, test_type, test_date, score, max_score, weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, quoteTableName(marksTable, g.backend))
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (assignment_id, student_id, test_type, test_date, score, max_score, weight)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, quoteTableName(marksTable, g.backend))
	}
	_, err := g.db.Exec(query, mark.AssignmentID, mark.StudentID, mark.TestType,
		formatTime(mark.TestDate, g.backend), mark.Score, mark.MaxScore, mark.Weight)
	if err != nil {
		return fmt.Errorf("failed to insert mark for student %s: %w", mark.StudentID, err)
	}

	return nil
}

// deleteByID removes any existing row with the given key before a replace.
func (g *SQLGradebook) deleteByID(table, column, id string) error {
	var query string
	switch g.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf("DELETE FROM %s WHERE %s = $1", quoteTableName(table, g.backend), column)
	default: // SQLite and MySQL
		query = fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quoteTableName(table, g.backend), column)
	}
	if _, err := g.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to replace row in %s: %w", table, err)
	}
	return nil
}
