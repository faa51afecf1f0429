// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"time"

	"docvault/internal/storage"
)

// Info represents general information about the service.
type Info struct {
	ServiceName string    `json:"service_name"`
	Version     string    `json:"version"`
	UptimeSince time.Time `json:"uptime_since"`
}

// SecurityReport is the verdict of the security validator for one staged
// file. Produced once per staged file, immutable afterward. Reasons is
// empty when the file is valid.
type SecurityReport struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
}

// UploadOptions carries the caller-declared attributes of an upload.
type UploadOptions struct {
	OriginalName     string `json:"original_name"`
	DeclaredMimeType string `json:"declared_mime_type"`

	// MaxSize overrides the configured default when positive.
	MaxSize int64 `json:"max_size,omitempty"`
}

// UploadOutcome is the tagged result of a single upload: either committed
// (final path, hash, cleanup handle) or rejected (reason). The cleanup
// handle removes the committed file and is only valid while the caller has
// not claimed the file for other purposes.
type UploadOutcome struct {
	Committed    bool            `json:"committed"`
	FinalPath    string          `json:"final_path,omitempty"`
	FileName     string          `json:"file_name,omitempty"`
	Size         int64           `json:"size"`
	HashSHA256   string          `json:"hash_sha256,omitempty"`
	Security     *SecurityReport `json:"security,omitempty"`
	RejectReason string          `json:"reject_reason,omitempty"`

	Cleanup *storage.CleanupHandle `json:"-"`
}

// BatchOutcome is the result of an all-or-nothing multi-file upload. When
// Success is false every previously committed file in Outcomes has been
// rolled back and no longer exists on disk.
type BatchOutcome struct {
	Outcomes  []UploadOutcome `json:"outcomes"`
	TotalSize int64           `json:"total_size"`
	Success   bool            `json:"success"`
}

// UploadStatistics aggregates counts and sizes across the staging root and
// the final store root. Read-only, diagnostic.
type UploadStatistics struct {
	StagedCount int   `json:"staged_count"`
	StagedBytes int64 `json:"staged_bytes"`
	FinalCount  int   `json:"final_count"`
	FinalBytes  int64 `json:"final_bytes"`
}
