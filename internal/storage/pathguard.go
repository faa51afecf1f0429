// filepath: internal/storage/pathguard.go
package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// IsWithinRoot reports whether candidate resolves to root or a descendant
// of it. Both paths are made absolute and symlink-free before comparison.
// Any resolution failure counts as unsafe: absence of proof of safety is
// treated as unsafe. It is checked before every write and before every
// delete that targets a caller-influenced path.
func IsWithinRoot(candidate, root string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return false
	}

	absCandidate, err := filepath.Abs(candidate)
	if err != nil {
		return false
	}
	resolvedCandidate, err := resolveMissing(absCandidate)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(resolvedRoot, resolvedCandidate)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// resolveMissing canonicalizes a path that may not exist yet. Symlinks are
// resolved for the longest existing prefix; the remaining segments are
// joined back lexically, since a segment that does not exist cannot be a
// symlink.
func resolveMissing(abs string) (string, error) {
	current := abs
	var tail []string

	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", err
		}
		tail = append(tail, filepath.Base(current))
		current = parent
	}
}
