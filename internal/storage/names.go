// filepath: internal/storage/names.go
package storage

import (
	"crypto/rand"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// maxNameLength bounds the sanitized part of generated names so the full
// file name stays well under common filesystem limits.
const maxNameLength = 100

// TempName produces a collision-resistant name for a file in the staging
// area. The ULID prefix carries a millisecond timestamp plus 80 bits of
// crypto-random entropy, so two calls in the same process are extremely
// unlikely to collide even when made concurrently.
func TempName(originalName string) string {
	return "stage-" + newULID() + "_" + SanitizeName(originalName)
}

// FinalName produces a collision-resistant name for a committed file.
// The final store allocator still resolves the rare collision at commit
// time; the entropy here only makes collisions rare, it is not relied on
// alone.
func FinalName(originalName string) string {
	return newULID() + "_" + SanitizeName(originalName)
}

// DisambiguateName appends a fresh random token to the base of an already
// generated name, preserving the extension. Used by the allocator's single
// collision retry.
func DisambiguateName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "_" + uuid.NewString()[:8] + ext
}

// SanitizeName reduces an untrusted original filename to a safe base name:
// path separators and parent segments are stripped, control characters and
// other hostile runes are replaced, and the result is length-bounded.
func SanitizeName(originalName string) string {
	// Normalize Windows separators so filepath.Base strips both kinds.
	name := strings.ReplaceAll(originalName, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name = b.String()

	// A leading dot would make the file hidden, and all-dot names ("..")
	// are directory syntax.
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "file"
	}

	if len(name) > maxNameLength {
		ext := filepath.Ext(name)
		if len(ext) > 20 {
			ext = ext[:20]
		}
		name = name[:maxNameLength-len(ext)] + ext
	}
	return name
}

func newULID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
