package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docanalyzer/internal/analyze"
	"docanalyzer/internal/model"
	"docanalyzer/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) SubmitUpload(ctx context.Context, r io.Reader, originalFilename string, contentType string) (*service.UploadResult, error) {
	args := m.Called(ctx, r, originalFilename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockDocumentService) ConfirmPayment(ctx context.Context, intentID, documentID string, opts analyze.Options) (*analyze.Result, error) {
	args := m.Called(ctx, intentID, documentID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyze.Result), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, limit, offset int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
