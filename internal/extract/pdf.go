package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"docanalyzer/internal/model"
)

// extractPDF pulls plain text and document-info metadata out of a PDF.
// The pdf library panics on some malformed files, so the whole conversion
// runs behind a recover that turns panics into ordinary errors.
func extractPDF(raw []byte) (meta *model.DocumentMetadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			meta = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	text, err := io.ReadAll(textReader)
	if err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	meta = newMetadata()
	meta.TextContent = strings.TrimSpace(string(text))
	meta.PageCount = coercePageCount(reader.NumPage())

	info := reader.Trailer().Key("Info")
	if author := infoString(info, "Author"); author != "" {
		meta.Author = author
	}
	if title := infoString(info, "Title"); title != "" {
		meta.Title = title
	}
	if created := pdfDate(infoString(info, "CreationDate")); created != "" {
		meta.CreationDate = created
	}
	if modified := pdfDate(infoString(info, "ModDate")); modified != "" {
		meta.ModificationDate = modified
	}

	return meta, nil
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

// pdfDate converts a PDF date string (D:YYYYMMDDHHMMSS...) to YYYY-MM-DD.
func pdfDate(s string) string {
	s = strings.TrimPrefix(s, "D:")
	if len(s) < 8 {
		return normalizeDateOrEmpty(s)
	}
	if t, err := time.Parse("20060102", s[:8]); err == nil {
		return t.Format("2006-01-02")
	}
	return normalizeDateOrEmpty(s)
}

func normalizeDateOrEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return normalizeDate(s)
}
