// filepath: internal/storage/staging_test.go
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errReader fails after yielding its prefix, simulating a dropped upload.
type errReader struct {
	prefix io.Reader
	err    error
	done   bool
}

func (r *errReader) Read(p []byte) (int, error) {
	if !r.done {
		n, err := r.prefix.Read(p)
		if err == io.EOF {
			r.done = true
			return n, nil
		}
		return n, err
	}
	return 0, r.err
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestStage(t *testing.T) {
	staging, err := NewStaging(t.TempDir())
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		content := "expropriation decision, parcel 12/4"
		staged, err := staging.Stage(strings.NewReader(content), "decision.pdf", 0)
		require.NoError(t, err)

		assert.Equal(t, "decision.pdf", staged.OriginalName)
		assert.Equal(t, int64(len(content)), staged.Size)
		assert.False(t, staged.CreatedAt.IsZero())

		data, err := os.ReadFile(staged.Path)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))

		info, err := os.Stat(staged.Path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	})

	t.Run("Unique Paths For Same Name", func(t *testing.T) {
		a, err := staging.Stage(strings.NewReader("a"), "scan.pdf", 0)
		require.NoError(t, err)
		b, err := staging.Stage(strings.NewReader("b"), "scan.pdf", 0)
		require.NoError(t, err)

		assert.NotEqual(t, a.Path, b.Path)
	})

	t.Run("Hostile Name Stays Inside Root", func(t *testing.T) {
		staged, err := staging.Stage(strings.NewReader("x"), "../../etc/passwd", 0)
		require.NoError(t, err)

		assert.Equal(t, staging.Root(), filepath.Dir(staged.Path))
	})
}

func TestStageSizeLimit(t *testing.T) {
	t.Run("Exactly At Limit", func(t *testing.T) {
		staging, err := NewStaging(t.TempDir())
		require.NoError(t, err)

		staged, err := staging.Stage(strings.NewReader("12345"), "a.txt", 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), staged.Size)
	})

	t.Run("One Byte Over Limit", func(t *testing.T) {
		staging, err := NewStaging(t.TempDir())
		require.NoError(t, err)

		_, err = staging.Stage(strings.NewReader("123456"), "a.txt", 5)
		assert.True(t, errors.Is(err, ErrSizeExceeded))

		// The partial file must not remain.
		assert.Empty(t, listFiles(t, staging.Root()))
	})
}

func TestStagePartialWriteCleanup(t *testing.T) {
	staging, err := NewStaging(t.TempDir())
	require.NoError(t, err)

	src := &errReader{prefix: strings.NewReader("partial"), err: errors.New("connection reset")}
	_, err = staging.Stage(src, "a.txt", 0)
	assert.Error(t, err)
	assert.Empty(t, listFiles(t, staging.Root()))
}

func TestDiscard(t *testing.T) {
	staging, err := NewStaging(t.TempDir())
	require.NoError(t, err)

	staged, err := staging.Stage(strings.NewReader("x"), "a.txt", 0)
	require.NoError(t, err)

	t.Run("Removes File", func(t *testing.T) {
		require.NoError(t, staging.Discard(staged))
		assert.NoFileExists(t, staged.Path)
	})

	t.Run("Already Gone Is Not An Error", func(t *testing.T) {
		assert.NoError(t, staging.Discard(staged))
	})

	t.Run("Nil Is Not An Error", func(t *testing.T) {
		assert.NoError(t, staging.Discard(nil))
	})

	t.Run("Refuses Path Outside Root", func(t *testing.T) {
		hostile := &StagedFile{Path: filepath.Join(staging.Root(), "..", "victim")}
		err := staging.Discard(hostile)
		assert.True(t, errors.Is(err, ErrPathTraversal))
	})
}
