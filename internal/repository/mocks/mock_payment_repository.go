package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docanalyzer/internal/model"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByStripePaymentID(ctx context.Context, stripePaymentID string) (*model.Payment, error) {
	args := m.Called(ctx, stripePaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CreateWithSummary(ctx context.Context, p *model.Payment, summary string) (*model.Payment, error) {
	args := m.Called(ctx, p, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}
