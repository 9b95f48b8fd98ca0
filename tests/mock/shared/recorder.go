//go:build unit || e2e

package sharedmock

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockRecorder is a testify mock of shared.Recorder. Every method is optional;
// use AssertCalled / AssertNumberOfCalls to check what was recorded.
type MockRecorder struct {
	mock.Mock
}

func NewMockRecorder() *MockRecorder {
	m := &MockRecorder{}
	m.On("ObserveRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("ConflictRetried", mock.Anything, mock.Anything).Maybe()
	m.On("ConflictExhausted", mock.Anything).Maybe()
	m.On("LedgerAppended", mock.Anything).Maybe()
	return m
}

func (m *MockRecorder) ObserveRequest(name, kind, outcome string, d time.Duration) {
	m.Called(name, kind, outcome, d)
}

func (m *MockRecorder) ConflictRetried(operation string, attempt int) {
	m.Called(operation, attempt)
}

func (m *MockRecorder) ConflictExhausted(operation string) {
	m.Called(operation)
}

func (m *MockRecorder) LedgerAppended(action string) {
	m.Called(action)
}
