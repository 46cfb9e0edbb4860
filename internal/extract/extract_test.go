package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const docxBody = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Once upon a time</w:t></w:r></w:p>
    <w:p><w:r><w:t>there was a document.</w:t></w:r></w:p>
  </w:body>
</w:document>`

const docxCore = `<?xml version="1.0"?>
<cp:coreProperties
  xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/"
  xmlns:dcterms="http://purl.org/dc/terms/">
  <dc:creator>Jane Author</dc:creator>
  <dc:title>A Tale</dc:title>
  <dcterms:created>2024-03-01T10:00:00Z</dcterms:created>
  <dcterms:modified>2024-04-15T08:30:00Z</dcterms:modified>
</cp:coreProperties>`

const docxApp = `<?xml version="1.0"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
  <Pages>3</Pages>
</Properties>`

func TestExtractDOCX(t *testing.T) {
	raw := buildDOCX(t, map[string]string{
		"word/document.xml": docxBody,
		"docProps/core.xml": docxCore,
		"docProps/app.xml":  docxApp,
	})

	meta, err := NewConverter().Extract(context.Background(), bytes.NewReader(raw), "story.docx")
	require.NoError(t, err)

	assert.Equal(t, "Once upon a time\nthere was a document.", meta.TextContent)
	assert.Equal(t, "Jane Author", meta.Author)
	assert.Equal(t, "A Tale", meta.Title)
	assert.Equal(t, "2024-03-01", meta.CreationDate)
	assert.Equal(t, "2024-04-15", meta.ModificationDate)
	assert.Equal(t, 3, meta.PageCount)
	assert.Equal(t, len([]rune(meta.TextContent)), meta.CharacterCount)
	assert.NotZero(t, meta.CharacterCount)
}

func TestExtractDOCXWithoutProps(t *testing.T) {
	raw := buildDOCX(t, map[string]string{"word/document.xml": docxBody})

	meta, err := NewConverter().Extract(context.Background(), bytes.NewReader(raw), "bare.DOCX")
	require.NoError(t, err)

	assert.Equal(t, UnknownField, meta.Author)
	assert.Equal(t, UnknownField, meta.Title)
	assert.Equal(t, UnknownField, meta.CreationDate)
	assert.Equal(t, UnknownField, meta.ModificationDate)
	assert.Equal(t, 0, meta.PageCount)
}

func TestExtractDOCXDeterministic(t *testing.T) {
	raw := buildDOCX(t, map[string]string{"word/document.xml": docxBody})

	first, err := NewConverter().Extract(context.Background(), bytes.NewReader(raw), "a.docx")
	require.NoError(t, err)
	second, err := NewConverter().Extract(context.Background(), bytes.NewReader(raw), "a.docx")
	require.NoError(t, err)

	assert.Equal(t, first.TextContent, second.TextContent)
	assert.Equal(t, first.CharacterCount, second.CharacterCount)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	_, err := NewConverter().Extract(context.Background(), strings.NewReader("data"), "image.png")
	assert.Error(t, err)
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := NewConverter().Extract(context.Background(), strings.NewReader("not a pdf"), "broken.pdf")
	assert.Error(t, err)
}

func TestExtractCorruptDOCX(t *testing.T) {
	_, err := NewConverter().Extract(context.Background(), strings.NewReader("not a zip"), "broken.docx")
	assert.Error(t, err)
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-05":           "2024-01-05",
		"2024/01/05":           "2024-01-05",
		"05-01-2024":           "2024-01-05",
		"05/01/2024":           "2024-01-05",
		"2024-03-01T10:00:00Z": "2024-03-01",
		"":                     UnknownField,
		"sometime last year":   "sometime last year",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeDate(in), "input %q", in)
	}
}

func TestPDFDate(t *testing.T) {
	assert.Equal(t, "2020-06-15", pdfDate("D:20200615120000Z"))
	assert.Equal(t, "2020-06-15", pdfDate("20200615"))
	assert.Equal(t, "", pdfDate(""))
}

func TestCoercePageCount(t *testing.T) {
	assert.Equal(t, 0, coercePageCount(-3))
	assert.Equal(t, 7, coercePageCount(7))
}
