// filepath: internal/storage/integrity.go
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// HashFile computes the SHA-256 digest of a file's content, streamed so
// large files never load fully into memory. The digest is returned as a
// lowercase hex string.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open file for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("could not hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyFile re-reads the file and compares its size and SHA-256 digest
// against the expected values. A size mismatch short-circuits without
// hashing. The bool result reports whether the file matches; the error is
// reserved for read failures.
func VerifyFile(path, expectedHash string, expectedSize int64) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("could not stat file for verification: %w", err)
	}
	if info.Size() != expectedSize {
		return false, nil
	}

	digest, err := HashFile(path)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(digest, expectedHash), nil
}
