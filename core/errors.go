package core

import "errors"

// Sentinel errors for the computation engine. Configuration errors
// (formula resolution and validation) are fatal to a pass; per-subject
// and per-student errors are absorbed into result statuses.
var (
	// ErrFormulaNotFound means no formula matched the requested id.
	ErrFormulaNotFound = errors.New("formula not found")

	// ErrNoActiveFormula means "active" was requested but no formula is
	// flagged active.
	ErrNoActiveFormula = errors.New("no active formula")

	// ErrInvalidFormula means a formula cannot produce a defined score:
	// negative weights, all-zero weights, or an out-of-range passing
	// threshold.
	ErrInvalidFormula = errors.New("invalid formula")

	// ErrNoMarksAvailable means a student has no marks at all for a
	// subject assignment. The subject is reported Incomplete, never as
	// a zero score.
	ErrNoMarksAvailable = errors.New("no marks available")

	// ErrInvalidMark means a raw mark violates 0 <= score <= max score.
	// Dropping such a mark silently would skew the mean, so the whole
	// student aggregation fails instead.
	ErrInvalidMark = errors.New("invalid mark")
)
