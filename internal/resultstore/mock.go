package resultstore

import (
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultStore is a mock implementation of ResultStore for testing.
type MockResultStore struct {
	mock.Mock
}

var _ contract.ResultStore = &MockResultStore{} // Compile-time check

// RecordClassResults implements the ResultStore interface.
func (m *MockResultStore) RecordClassResults(set *schema.ClassResultSet) error {
	args := m.Called(set)
	return args.Error(0)
}

// ClassResults implements the ResultStore interface.
func (m *MockResultStore) ClassResults(classID string, term schema.Term, year string) ([]schema.StudentResult, error) {
	args := m.Called(classID, term, year)
	results, _ := args.Get(0).([]schema.StudentResult)
	return results, args.Error(1)
}

// AllRecords implements the ResultStore interface.
func (m *MockResultStore) AllRecords() ([]contract.StoredResult, error) {
	args := m.Called()
	records, _ := args.Get(0).([]contract.StoredResult)
	return records, args.Error(1)
}

// Status implements the ResultStore interface.
func (m *MockResultStore) Status() (*contract.StoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(*contract.StoreStatus)
	return status, args.Error(1)
}

// Clear implements the ResultStore interface.
func (m *MockResultStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the ResultStore interface.
func (m *MockResultStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
