// filepath: internal/services/interfaces.go
package services

import (
	"context"
	"io"

	"docvault/internal/models"
)

// SecurityValidator is the external collaborator consulted once per staged
// file. The ingestion subsystem treats it as opaque: a failing report turns
// the upload into a Rejected outcome and the staged file is deleted
// immediately.
type SecurityValidator interface {
	Validate(path, originalName, declaredMimeType string, size int64) models.SecurityReport
}

// BatchFile is one element of an all-or-nothing upload batch.
type BatchFile struct {
	Content io.Reader
	Options models.UploadOptions
}

// UploadService defines the narrow ingestion contract exposed to the
// case/document management layer.
type UploadService interface {
	UploadFile(content io.Reader, opts models.UploadOptions) (*models.UploadOutcome, error)
	UploadBatch(files []BatchFile) *models.BatchOutcome
	VerifyIntegrity(path, expectedHash string, expectedSize int64) bool
	GetUploadStatistics() (*models.UploadStatistics, error)
}

// Auditor defines the interface for recording security-relevant events.
// Audit logging is the caller's responsibility; the ingestion subsystem
// only returns enough data (hash, final path, size) to make it possible.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "document.upload", "document.verify")
	// actor: who did it (principal identity resolved by the caller)
	// resource: what was affected (e.g., a final store path)
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}
