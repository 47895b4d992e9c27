package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockPageRasterizer is a mock implementation of port.PageRasterizer.
type MockPageRasterizer struct {
	mock.Mock
}

func (m *MockPageRasterizer) FileToPages(filename string, data []byte, maxPages int) ([][]byte, error) {
	args := m.Called(filename, data, maxPages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}
