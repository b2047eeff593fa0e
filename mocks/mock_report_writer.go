package mocks

import (
	"github.com/stretchr/testify/mock"

	"birmerge/internal/domain"
)

// MockReportWriter is a mock implementation of port.ReportWriter.
type MockReportWriter struct {
	mock.Mock
}

func (m *MockReportWriter) Suffix() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockReportWriter) Write(path string, segments []domain.SegmentSummary) error {
	args := m.Called(path, segments)
	return args.Error(0)
}
