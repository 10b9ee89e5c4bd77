package gradebook

import (
	"context"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"
	"github.com/stretchr/testify/mock"
)

// MockGradebook is a mock implementation of Gradebook for testing.
type MockGradebook struct {
	mock.Mock
}

var _ contract.Gradebook = &MockGradebook{} // Compile-time check

// Formulas implements the Gradebook interface.
func (m *MockGradebook) Formulas(ctx context.Context) ([]schema.Formula, error) {
	args := m.Called(ctx)
	formulas, _ := args.Get(0).([]schema.Formula)
	return formulas, args.Error(1)
}

// Roster implements the Gradebook interface.
func (m *MockGradebook) Roster(ctx context.Context, classID string, term schema.Term, year string) (*schema.Roster, error) {
	args := m.Called(ctx, classID, term, year)
	roster, _ := args.Get(0).(*schema.Roster)
	return roster, args.Error(1)
}

// Marks implements the Gradebook interface.
func (m *MockGradebook) Marks(ctx context.Context, assignmentID, studentID string) ([]schema.AssessmentMark, error) {
	args := m.Called(ctx, assignmentID, studentID)
	marks, _ := args.Get(0).([]schema.AssessmentMark)
	return marks, args.Error(1)
}

// Close implements the Gradebook interface.
func (m *MockGradebook) Close() error {
	args := m.Called()
	return args.Error(0)
}
