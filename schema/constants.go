package schema

// Custom string types for type safety.
type (
	// Term represents an academic term within a year.
	Term string

	// Status represents the computation status of a result record.
	Status string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for storage.
	DatabaseBackend string
)

// ActiveFormulaID is the pseudo-identifier that resolves to whichever
// formula is currently flagged active.
const ActiveFormulaID = "active"

// Defaults applied to marks with unset optional columns.
const (
	DefaultMaxScore   = 100.0
	DefaultMarkWeight = 1.0
)

// All terms supported.
const (
	FirstTerm  Term = "First Term"
	SecondTerm Term = "Second Term"
	ThirdTerm  Term = "Third Term"
	FinalTerm  Term = "Final"
)

// All result statuses supported.
const (
	StatusRanked     Status = "Ranked"
	StatusIncomplete Status = "Incomplete"
	StatusNoData     Status = "No Data"
)

// Well-known assessment type labels. Labels are free-form in the data;
// these constants only cover the common vocabulary.
const (
	TestTypeMidterm    = "Mid-term"
	TestTypeEndterm    = "End-term"
	TestTypeFinal      = "Final"
	TestTypeAssignment = "Assignment"
	TestTypeQuiz       = "Quiz"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidTerms lists all valid terms.
var ValidTerms = map[Term]struct{}{
	FirstTerm:  {},
	SecondTerm: {},
	ThirdTerm:  {},
	FinalTerm:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid storage backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
