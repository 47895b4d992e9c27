package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kyclens/internal/domain"
	"kyclens/internal/multidoc"
	"kyclens/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ExtractMulti(ctx context.Context, src service.ExtractSource, grouping multidoc.Config) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, src, grouping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}
