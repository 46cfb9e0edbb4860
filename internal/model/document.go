package model

import "time"

// DocumentMetadata is the canonical shape of the metadata extracted from an
// uploaded document. Fields the conversion step cannot determine default to
// "Unknown" (strings) or 0 (numbers).
type DocumentMetadata struct {
	TextContent      string `json:"text_content"`
	Author           string `json:"author"`
	CreationDate     string `json:"creation_date"`
	ModificationDate string `json:"modification_date"`
	Title            string `json:"title"`
	PageCount        int    `json:"page_count"`
	CharacterCount   int    `json:"character_count"`
}

// Document represents an uploaded file and the state of its analysis.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID               string            `json:"id"`
	Filename         string            `json:"filename"`
	OriginalFilename string            `json:"original_filename"`
	StoragePath      string            `json:"storage_path"`
	FileSize         int64             `json:"file_size"`
	MimeType         string            `json:"mime_type"`
	Metadata         *DocumentMetadata `json:"doc_metadata,omitempty"`
	AnalysisSummary  *string           `json:"analysis_summary,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}
