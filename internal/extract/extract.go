// Package extract converts uploaded documents (PDF, DOCX) into plain text
// plus best-effort metadata. Fields the underlying format does not expose
// default to "Unknown" or 0; callers must not use partial results on error.
package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"docanalyzer/internal/model"
)

// UnknownField is the sentinel used for metadata the source file lacks.
const UnknownField = "Unknown"

// Extractor converts a stored document into text and metadata.
type Extractor interface {
	// Extract reads the whole document from r and returns its canonical
	// metadata. The filename is used only to pick the decoder by extension.
	Extract(ctx context.Context, r io.Reader, filename string) (*model.DocumentMetadata, error)
}

type converter struct{}

// NewConverter returns the default PDF/DOCX extractor.
func NewConverter() Extractor {
	return converter{}
}

func (converter) Extract(ctx context.Context, r io.Reader, filename string) (*model.DocumentMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Uploads are capped by the HTTP body limit, so buffering the whole
	// document is bounded.
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var meta *model.DocumentMetadata
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		meta, err = extractPDF(raw)
	case ".docx":
		meta, err = extractDOCX(raw)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	meta.CharacterCount = utf8.RuneCountInString(meta.TextContent)
	return meta, nil
}

// newMetadata returns a metadata struct with every field set to its sentinel.
func newMetadata() *model.DocumentMetadata {
	return &model.DocumentMetadata{
		Author:           UnknownField,
		CreationDate:     UnknownField,
		ModificationDate: UnknownField,
		Title:            UnknownField,
	}
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "02-01-2006", "02/01/2006"}

// normalizeDate reduces common date spellings to YYYY-MM-DD. Unparseable
// non-empty strings are passed through; empty input becomes the sentinel.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownField
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	// RFC3339 timestamps show up in DOCX core properties.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}

// coercePageCount clamps the page count to a non-negative integer.
func coercePageCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
