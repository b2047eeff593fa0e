package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"birmerge/internal/document"
)

// MockConverter is a mock implementation of port.Converter.
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, xml []byte) (document.Tree, error) {
	args := m.Called(ctx, xml)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(document.Tree), args.Error(1)
}
