package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docanalyzer/internal/analyze"
	"docanalyzer/internal/extract"
	"docanalyzer/internal/model"
	"docanalyzer/internal/payment"
	"docanalyzer/internal/repository"
	"docanalyzer/internal/storage"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNotFound            = errors.New("document not found")
	ErrReaderNil           = errors.New("reader is nil")
	ErrFilenameRequired    = errors.New("filename is required")
	ErrInvalidFileType     = errors.New("invalid file type")
	ErrPaymentNotSucceeded = errors.New("payment not succeeded")
)

// UploadResult is returned to the client after a successful upload: the
// document id plus everything the browser needs to complete the payment.
type UploadResult struct {
	DocumentID     string `json:"document_id"`
	ClientSecret   string `json:"client_secret"`
	PublishableKey string `json:"publishable_key"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases of the upload/analysis pipeline.
type DocumentService interface {
	// SubmitUpload validates and stores the uploaded file, extracts its text
	// and metadata, records the document and creates a payment intent for
	// the analysis fee. The analysis itself is deferred until the payment is
	// confirmed.
	SubmitUpload(ctx context.Context, r io.Reader, originalFilename string, contentType string) (*UploadResult, error)

	// ConfirmPayment checks the intent's settlement status and, once
	// succeeded, runs the analysis and records summary plus payment.
	// Confirming the same intent twice returns the stored summary without a
	// second model call.
	ConfirmPayment(ctx context.Context, intentID, documentID string, opts analyze.Options) (*analyze.Result, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, id string) error
}

// Fee is the fixed price of one analysis in minor currency units.
type Fee struct {
	Amount   int64
	Currency string
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store          storage.Storage
	repo           repository.DocumentRepository
	payments       repository.PaymentRepository
	extractor      extract.Extractor
	analyzer       analyze.Analyzer
	gateway        payment.Gateway
	fee            Fee
	publishableKey string
	log            *slog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	repo repository.DocumentRepository,
	payments repository.PaymentRepository,
	extractor extract.Extractor,
	analyzer analyze.Analyzer,
	gateway payment.Gateway,
	fee Fee,
	publishableKey string,
	logger *slog.Logger,
) DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{
		store:          store,
		repo:           repo,
		payments:       payments,
		extractor:      extractor,
		analyzer:       analyzer,
		gateway:        gateway,
		fee:            fee,
		publishableKey: publishableKey,
		log:            logger,
	}
}

// allowedExtensions are the document types the extraction step supports.
var allowedExtensions = map[string]bool{".pdf": true, ".docx": true}

func (s *documentService) SubmitUpload(ctx context.Context, r io.Reader, originalFilename string, contentType string) (*UploadResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if strings.TrimSpace(originalFilename) == "" {
		return nil, ErrFilenameRequired
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return nil, ErrInvalidFileType
	}

	// Collision-resistant storage name: random token + sanitized original.
	genName := uuid.New().String() + "_" + sanitizeFilename(originalFilename)
	key := filepath.ToSlash(filepath.Join("documents", genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        -1,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	meta, err := s.extractStored(ctx, key, originalFilename)
	if err != nil {
		s.removeStored(ctx, key)
		return nil, fmt.Errorf("extract document: %w", err)
	}

	doc := &model.Document{
		ID:               uuid.New().String(),
		Filename:         genName,
		OriginalFilename: originalFilename,
		StoragePath:      objInfo.Key,
		FileSize:         objInfo.Size, // measured, not client-declared
		MimeType:         contentType,
		Metadata:         meta,
		CreatedAt:        time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		s.removeStored(ctx, key)
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	intent, err := s.gateway.CreateIntent(ctx, s.fee.Amount, s.fee.Currency)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &UploadResult{
		DocumentID:     stored.ID,
		ClientSecret:   intent.ClientSecret,
		PublishableKey: s.publishableKey,
		Amount:         s.fee.Amount,
		Currency:       s.fee.Currency,
	}, nil
}

func (s *documentService) ConfirmPayment(ctx context.Context, intentID, documentID string, opts analyze.Options) (*analyze.Result, error) {
	if intentID == "" || documentID == "" {
		return nil, ErrIDRequired
	}

	// A payment already recorded for this intent means the analysis ran;
	// return the stored summary instead of charging a second model call.
	if existing, err := s.payments.FindByStripePaymentID(ctx, intentID); err == nil {
		doc, err := s.repo.FindByID(ctx, existing.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("load analyzed document: %w", err)
		}
		if doc.AnalysisSummary == nil {
			return nil, fmt.Errorf("payment %s recorded without analysis summary", intentID)
		}
		return &analyze.Result{Summary: *doc.AnalysisSummary}, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}
	if intent.Status != model.PaymentStatusSucceeded {
		return nil, ErrPaymentNotSucceeded
	}

	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.Metadata == nil || doc.Metadata.TextContent == "" {
		return nil, fmt.Errorf("document %s has no extracted text", documentID)
	}

	result, err := s.analyzer.Analyze(ctx, doc.Metadata.TextContent, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}

	pay := &model.Payment{
		ID:              uuid.New().String(),
		StripePaymentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		Status:          intent.Status,
		DocumentID:      doc.ID,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := s.payments.CreateWithSummary(ctx, pay, result.Summary); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	return result, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// extractStored runs the extractor against the just-persisted object so the
// recorded text always matches the stored bytes.
func (s *documentService) extractStored(ctx context.Context, key, originalFilename string) (*model.DocumentMetadata, error) {
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open stored upload: %w", err)
	}
	defer rc.Close()
	return s.extractor.Extract(ctx, rc, originalFilename)
}

// removeStored is best-effort cleanup after a downstream failure; a failed
// removal is logged, never escalated.
func (s *documentService) removeStored(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("cleanup of stored upload failed", "key", key, "error", err)
	}
}

// sanitizeFilename strips path components and replaces characters that are
// unsafe in storage keys.
func sanitizeFilename(name string) string {
	// Path separators from either platform are treated as directories.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
