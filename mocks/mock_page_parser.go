package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kyclens/internal/port"
)

// MockPageParser is a mock implementation of port.PageParser.
type MockPageParser struct {
	mock.Mock
}

func (m *MockPageParser) ParsePage(ctx context.Context, input port.PageInput) (*port.RawPageResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RawPageResult), args.Error(1)
}
