// filepath: internal/security/validator_test.go
package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestValidate(t *testing.T) {
	t.Run("Plain Text Accepted", func(t *testing.T) {
		v := NewValidator(nil)
		path := writeFile(t, "notes.txt", []byte("parcel 12/4 site visit notes"))

		report := v.Validate(path, "notes.txt", "text/plain", 28)
		assert.True(t, report.Valid)
		assert.Empty(t, report.Reasons)
	})

	t.Run("PDF Accepted", func(t *testing.T) {
		v := NewValidator([]string{"pdf"})
		content := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
		path := writeFile(t, "decision.pdf", content)

		report := v.Validate(path, "decision.pdf", "application/pdf", int64(len(content)))
		assert.True(t, report.Valid)
	})

	t.Run("Empty File Rejected", func(t *testing.T) {
		v := NewValidator(nil)
		path := writeFile(t, "empty.pdf", nil)

		report := v.Validate(path, "empty.pdf", "", 0)
		assert.False(t, report.Valid)
		assert.Contains(t, report.Reasons, "file is empty")
	})

	t.Run("Extension Not In Allow-List", func(t *testing.T) {
		v := NewValidator([]string{"pdf", "txt"})
		path := writeFile(t, "tool.exe", []byte("not really a binary"))

		report := v.Validate(path, "tool.exe", "", 19)
		assert.False(t, report.Valid)
		assert.Contains(t, report.Reasons, `file format "exe" is not allowed`)
	})

	t.Run("Allow-List Is Case Insensitive", func(t *testing.T) {
		v := NewValidator([]string{".PDF"})
		content := []byte("%PDF-1.4\n")
		path := writeFile(t, "decision.pdf", content)

		report := v.Validate(path, "DECISION.PDF", "", int64(len(content)))
		assert.True(t, report.Valid)
	})

	t.Run("ELF Binary Blocked", func(t *testing.T) {
		v := NewValidator(nil)
		content := append([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}, make([]byte, 64)...)
		path := writeFile(t, "payload.pdf", content)

		report := v.Validate(path, "payload.pdf", "", int64(len(content)))
		assert.False(t, report.Valid)
		require.NotEmpty(t, report.Reasons)
		assert.Contains(t, report.Reasons[0], "executable content type")
	})

	t.Run("Shell Script Blocked", func(t *testing.T) {
		v := NewValidator(nil)
		content := []byte("#!/bin/sh\nrm -rf /\n")
		path := writeFile(t, "innocent.txt", content)

		report := v.Validate(path, "innocent.txt", "", int64(len(content)))
		assert.False(t, report.Valid)
	})

	t.Run("Declared Type Mismatch", func(t *testing.T) {
		v := NewValidator(nil)
		path := writeFile(t, "photo.png", []byte("this is plain text, not an image"))

		report := v.Validate(path, "photo.png", "image/png", 32)
		assert.False(t, report.Valid)
		require.NotEmpty(t, report.Reasons)
		assert.Contains(t, report.Reasons[0], "does not match detected type")
	})

	t.Run("Generic Declared Type Skips Mismatch Check", func(t *testing.T) {
		v := NewValidator(nil)
		path := writeFile(t, "anything.bin", []byte("arbitrary bytes here"))

		report := v.Validate(path, "anything.bin", "application/octet-stream", 20)
		assert.True(t, report.Valid)
	})

	t.Run("Declared Ancestor Type Accepted", func(t *testing.T) {
		v := NewValidator(nil)
		content := []byte("owner,parcel,area\nnovak,12/4,350\nhorak,12/5,410\n")
		path := writeFile(t, "owners.csv", content)

		// CSV detects as text/csv; text/plain is its ancestor.
		report := v.Validate(path, "owners.csv", "text/plain", int64(len(content)))
		assert.True(t, report.Valid)
	})

	t.Run("Unreadable File Rejected", func(t *testing.T) {
		v := NewValidator(nil)

		report := v.Validate(filepath.Join(t.TempDir(), "nope.pdf"), "nope.pdf", "", 10)
		assert.False(t, report.Valid)
		require.NotEmpty(t, report.Reasons)
		assert.Contains(t, report.Reasons[0], "could not inspect file content")
	})
}
