// filepath: internal/storage/commit.go
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"docvault/internal/logging"
)

// CleanupHandle is a single-use disposable capability that removes whatever
// file currently exists at its path. It is handed out by Commit so a caller
// (typically the batch orchestrator) can roll a commit back.
type CleanupHandle struct {
	path string
	once sync.Once
}

func newCleanupHandle(path string) *CleanupHandle {
	return &CleanupHandle{path: path}
}

// Path returns the file path the handle guards.
func (h *CleanupHandle) Path() string {
	return h.path
}

// Dispose deletes the file at the handle's path. It is idempotent: a second
// invocation is a harmless no-op, and a file that is already gone is not an
// error (delete-if-exists semantics).
func (h *CleanupHandle) Dispose() error {
	var err error
	h.once.Do(func() {
		if rmErr := os.Remove(h.path); rmErr != nil && !os.IsNotExist(rmErr) {
			err = fmt.Errorf("could not remove committed file: %w", rmErr)
		}
	})
	return err
}

// Commit moves a staged file to its final path in a single rename, making
// the file visible all-at-once: observers see either nothing or the
// complete file. When the staging and final roots sit on different volumes
// the rename fails with EXDEV and a copy-verify-delete fallback runs
// instead. The returned handle removes the committed file when disposed.
func Commit(stagedPath, finalPath string) (*CleanupHandle, error) {
	err := os.Rename(stagedPath, finalPath)
	if err == nil {
		return newCleanupHandle(finalPath), nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return nil, fmt.Errorf("could not move staged file to final store: %w", err)
	}

	if err := copyAcrossVolumes(stagedPath, finalPath); err != nil {
		return nil, err
	}
	return newCleanupHandle(finalPath), nil
}

// copyAcrossVolumes copies the staged file to a .part name next to the
// final path, syncs it, renames it into place and then deletes the
// original. The .part file is removed on any failure so a truncated final
// file is never left behind.
func copyAcrossVolumes(stagedPath, finalPath string) error {
	partPath := finalPath + ".part"

	src, err := os.Open(stagedPath)
	if err != nil {
		return fmt.Errorf("could not open staged file for copy: %w", err)
	}
	defer src.Close()

	srcInfo, err := src.Stat()
	if err != nil {
		return fmt.Errorf("could not stat staged file: %w", err)
	}

	dst, err := os.OpenFile(partPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("could not create destination file: %w", err)
	}

	written, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		os.Remove(partPath)
		return fmt.Errorf("could not copy staged file across volumes: %w", err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		os.Remove(partPath)
		return fmt.Errorf("could not sync destination file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(partPath)
		return fmt.Errorf("could not close destination file: %w", err)
	}

	if written != srcInfo.Size() {
		os.Remove(partPath)
		return fmt.Errorf("cross-volume copy wrote %d of %d bytes", written, srcInfo.Size())
	}

	if err := os.Rename(partPath, finalPath); err != nil {
		os.Remove(partPath)
		return fmt.Errorf("could not move copied file into place: %w", err)
	}

	// The final file is in place; a failure deleting the original only
	// leaves a staged leftover for the reaper.
	if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
		logging.Log.Warnf("Committed %s but failed to delete staged original %s: %v", finalPath, stagedPath, err)
	}
	return nil
}
