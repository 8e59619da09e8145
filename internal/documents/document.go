// Package documents implements the regulatory document domain. It provides
// types, data access, and business logic for document upload, text
// validation, metadata management, and blob storage integration.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document statuses.
const (
	StatusUploaded = "uploaded"
	StatusAnalyzed = "analyzed"
)

// Document represents a registered regulatory document with its metadata
// and blob storage reference. Language and Keywords are detected from the
// extracted text at upload time.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Language    string    `json:"language"`
	Keywords    []string  `json:"keywords"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new
// document. Data holds the raw file bytes. PageCount is optional and may be
// extracted by the caller via pdfcpu; nil values are stored as NULL.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}
