// Package contract provides interfaces and shared utilities for the rankbook CLI's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/schooltools/rankbook/schema"
)

// Gradebook supplies the read-only snapshots a computation pass works
// from: formula definitions, class rosters, and raw assessment marks.
// The engine never mutates anything behind this interface.
type Gradebook interface {
	Formulas(ctx context.Context) ([]schema.Formula, error)
	Roster(ctx context.Context, classID string, term schema.Term, year string) (*schema.Roster, error)
	Marks(ctx context.Context, assignmentID, studentID string) ([]schema.AssessmentMark, error)
	Close() error
}

// ResultStore persists finalized result records for downstream
// reporting. A class result set is always replaced atomically for its
// class+term+year, never partially updated.
type ResultStore interface {
	RecordClassResults(set *schema.ClassResultSet) error
	ClassResults(classID string, term schema.Term, year string) ([]schema.StudentResult, error)
	AllRecords() ([]StoredResult, error)
	Status() (*StoreStatus, error)
	Clear() error
	Close() error
}

// StoredResult is one persisted student result row, flattened for
// export and status reporting.
type StoredResult struct {
	PassID               string
	ClassID              string
	StudentID            string
	AcademicYear         string
	Term                 schema.Term
	TotalScore           float64
	AverageScore         float64
	PositionInClass      int
	TotalStudentsInClass int
	Status               schema.Status
	RecordedAt           time.Time
}

// StoreStatus summarizes the contents of a result store.
type StoreStatus struct {
	Backend   schema.DatabaseBackend
	Connected bool
	Passes    int
	Records   int
	LastPass  time.Time
	HasRecord bool
}
