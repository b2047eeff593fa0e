package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDecoder is a mock implementation of port.Decoder.
type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Decode(ctx context.Context, envelope []byte) ([]byte, error) {
	args := m.Called(ctx, envelope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
