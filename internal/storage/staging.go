// filepath: internal/storage/staging.go
// Package storage provides the atomic document ingestion core: staging,
// integrity hashing, final store allocation, atomic commits and background
// reclamation of abandoned staged files.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// StagedFile describes a file held in the staging area. It is owned
// exclusively by the staging area until it is committed or reaped and is
// never referenced by any persisted business record.
type StagedFile struct {
	Path         string
	OriginalName string
	Size         int64
	CreatedAt    time.Time
}

// Staging receives raw upload bytes into uniquely named temporary files
// under a single staging root.
type Staging struct {
	root string
}

// NewStaging creates the staging area, creating the root directory if
// needed.
func NewStaging(root string) (*Staging, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("could not resolve staging root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("could not create staging root: %w", err)
	}
	return &Staging{root: abs}, nil
}

// Root returns the absolute staging root directory.
func (s *Staging) Root() string {
	return s.root
}

// Stage streams fileData fully into a new temp-named file under the staging
// root. maxSize is enforced while writing: a payload that exceeds it is
// deleted and rejected with ErrSizeExceeded (maxSize <= 0 means unlimited).
// On any partial-write failure the partial file is deleted before the error
// is returned, so later stages never see a half-written file.
func (s *Staging) Stage(fileData io.Reader, originalName string, maxSize int64) (*StagedFile, error) {
	path := filepath.Join(s.root, TempName(originalName))
	if !IsWithinRoot(path, s.root) {
		return nil, fmt.Errorf("%w: staged name %q", ErrPathTraversal, originalName)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not create staged file: %w", err)
	}

	// Read one byte past the limit so an oversized payload is detected
	// without writing the whole thing to disk.
	src := fileData
	if maxSize > 0 {
		src = io.LimitReader(fileData, maxSize+1)
	}

	written, err := io.Copy(f, src)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("could not write staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("could not close staged file: %w", err)
	}

	if maxSize > 0 && written > maxSize {
		os.Remove(path)
		return nil, fmt.Errorf("%w: payload larger than %d bytes", ErrSizeExceeded, maxSize)
	}

	return &StagedFile{
		Path:         path,
		OriginalName: originalName,
		Size:         written,
		CreatedAt:    time.Now(),
	}, nil
}

// Discard removes a staged file. A file that is already gone is not an
// error.
func (s *Staging) Discard(sf *StagedFile) error {
	if sf == nil {
		return nil
	}
	if !IsWithinRoot(sf.Path, s.root) {
		return fmt.Errorf("%w: refusing to delete %s", ErrPathTraversal, sf.Path)
	}
	if err := os.Remove(sf.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not discard staged file: %w", err)
	}
	return nil
}
