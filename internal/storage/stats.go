// filepath: internal/storage/stats.go
package storage

import (
	"os"
	"path/filepath"

	"docvault/internal/logging"
)

// TreeStats holds aggregate counts for one directory tree.
type TreeStats struct {
	FileCount  int
	TotalBytes int64
}

// MeasureTree counts files and bytes under root. The traversal uses an
// explicit directory work-list instead of recursion, so stack usage stays
// flat regardless of tree depth. It has no side effects and is safe to call
// at any time; a missing root yields empty stats, and unreadable entries
// are skipped.
func MeasureTree(root string) (TreeStats, error) {
	var stats TreeStats

	work := []string{root}
	for len(work) > 0 {
		dir := work[len(work)-1]
		work = work[:len(work)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root && os.IsNotExist(err) {
				return stats, nil
			}
			// A directory removed mid-traversal is not worth failing over.
			logging.Log.Debugf("Stats traversal skipping %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				work = append(work, path)
				continue
			}
			info, err := entry.Info()
			if err != nil {
				logging.Log.Debugf("Stats traversal skipping %s: %v", path, err)
				continue
			}
			stats.FileCount++
			stats.TotalBytes += info.Size()
		}
	}
	return stats, nil
}
