package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docanalyzer/internal/model"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, r io.Reader, filename string) (*model.DocumentMetadata, error) {
	args := m.Called(ctx, r, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentMetadata), args.Error(1)
}
