package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docanalyzer/internal/analyze"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, text string, opts analyze.Options) (*analyze.Result, error) {
	args := m.Called(ctx, text, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyze.Result), args.Error(1)
}
