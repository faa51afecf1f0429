// filepath: internal/storage/pathguard_test.go
package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWithinRoot(t *testing.T) {
	root := t.TempDir()

	t.Run("Root Itself", func(t *testing.T) {
		assert.True(t, IsWithinRoot(root, root))
	})

	t.Run("Direct Child", func(t *testing.T) {
		assert.True(t, IsWithinRoot(filepath.Join(root, "a.pdf"), root))
	})

	t.Run("Nested Missing Path", func(t *testing.T) {
		assert.True(t, IsWithinRoot(filepath.Join(root, "2024", "07", "01", "a.pdf"), root))
	})

	t.Run("Parent Escape", func(t *testing.T) {
		assert.False(t, IsWithinRoot(filepath.Join(root, "..", "escape.pdf"), root))
	})

	t.Run("Sibling Of Root", func(t *testing.T) {
		assert.False(t, IsWithinRoot(root+"-sibling", root))
	})

	t.Run("Unrelated Absolute Path", func(t *testing.T) {
		assert.False(t, IsWithinRoot("/etc/passwd", root))
	})

	t.Run("Dot Segments Collapsing Inside", func(t *testing.T) {
		assert.True(t, IsWithinRoot(filepath.Join(root, "sub", "..", "a.pdf"), root))
	})
}

func TestIsWithinRootSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	root := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(outside, link))

	// The path is lexically inside the root but resolves outside it.
	assert.False(t, IsWithinRoot(filepath.Join(link, "a.pdf"), root))
}
