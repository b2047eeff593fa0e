package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockInputSelector is a mock implementation of port.InputSelector.
type MockInputSelector struct {
	mock.Mock
}

func (m *MockInputSelector) Select(dir, suffix string) (string, error) {
	args := m.Called(dir, suffix)
	return args.String(0), args.Error(1)
}
