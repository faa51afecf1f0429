// filepath: internal/services/upload_service.go
package services

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"docvault/internal/logging"
	"docvault/internal/metrics"
	"docvault/internal/models"
	"docvault/internal/storage"

	gocache "github.com/patrickmn/go-cache"
)

// Compile-time check to ensure interface is implemented
var _ UploadService = (*uploadService)(nil)

const statsCacheKey = "upload_statistics"

// uploadService sequences the ingestion pipeline for each upload:
// staging -> security validation -> hashing -> allocation -> atomic commit.
// Many uploads may run concurrently on separate goroutines without
// coordination; each gets its own uniquely-named staged file.
type uploadService struct {
	staging   *storage.Staging
	allocator *storage.Allocator
	validator SecurityValidator
	metrics   *metrics.Metrics

	// defaultMaxSize applies when UploadOptions.MaxSize is unset.
	defaultMaxSize int64

	// statsCache keeps the last traversal result briefly, since the
	// diagnostic endpoint may be polled far more often than the trees
	// change meaningfully.
	statsCache *gocache.Cache
}

// NewUploadService creates the upload service. metrics may be nil (e.g. in
// tests that do not assert on counters).
func NewUploadService(staging *storage.Staging, allocator *storage.Allocator, validator SecurityValidator, defaultMaxSize int64, m *metrics.Metrics) *uploadService {
	return &uploadService{
		staging:        staging,
		allocator:      allocator,
		validator:      validator,
		metrics:        m,
		defaultMaxSize: defaultMaxSize,
		statsCache:     gocache.New(30*time.Second, time.Minute),
	}
}

// UploadFile moves one upload from untrusted bytes to a durable, hashed,
// collision-free file in the final store.
//
// A payload over the size limit or a failing security report yields a
// Rejected outcome and a nil error; traversal, collision and IO failures
// yield a typed error. In every non-committed case the staged bytes are
// deleted before returning.
func (s *uploadService) UploadFile(content io.Reader, opts models.UploadOptions) (*models.UploadOutcome, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = s.defaultMaxSize
	}

	staged, err := s.staging.Stage(content, opts.OriginalName, maxSize)
	if err != nil {
		if errors.Is(err, storage.ErrSizeExceeded) {
			logging.Log.Infof("Rejected oversized upload %q (limit %d bytes).", opts.OriginalName, maxSize)
			s.countRejection("size")
			return &models.UploadOutcome{
				Committed:    false,
				Size:         maxSize,
				RejectReason: err.Error(),
			}, nil
		}
		s.countRejection("io")
		return nil, err
	}

	declaredMime := opts.DeclaredMimeType
	if declaredMime == "" {
		declaredMime = "application/octet-stream"
	}

	report := s.validator.Validate(staged.Path, staged.OriginalName, declaredMime, staged.Size)
	if !report.Valid {
		if err := s.staging.Discard(staged); err != nil {
			logging.Log.Warnf("Failed to discard rejected staged file %s: %v", staged.Path, err)
		}
		logging.Log.Infof("Security validation rejected %q: %s", opts.OriginalName, strings.Join(report.Reasons, "; "))
		s.countRejection("security")
		return &models.UploadOutcome{
			Committed:    false,
			Size:         staged.Size,
			Security:     &report,
			RejectReason: strings.Join(report.Reasons, "; "),
		}, nil
	}

	digest, err := storage.HashFile(staged.Path)
	if err != nil {
		s.discardOnError(staged)
		s.countRejection("io")
		return nil, err
	}

	dir, err := s.allocator.Allocate(time.Now())
	if err != nil {
		s.discardOnError(staged)
		s.countRejection("io")
		return nil, err
	}

	finalPath, err := s.allocator.ResolveCollision(dir, storage.FinalName(staged.OriginalName))
	if err != nil {
		s.discardOnError(staged)
		if errors.Is(err, storage.ErrCollisionUnresolved) {
			s.countRejection("collision")
		} else {
			s.countRejection("io")
		}
		return nil, err
	}

	cleanup, err := storage.Commit(staged.Path, finalPath)
	if err != nil {
		s.discardOnError(staged)
		s.countRejection("io")
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DocumentsCommitted.Inc()
		s.metrics.BytesCommitted.Add(float64(staged.Size))
	}
	logging.Log.Debugf("Committed %q as %s (%d bytes, sha256 %s).", opts.OriginalName, finalPath, staged.Size, digest)

	return &models.UploadOutcome{
		Committed:  true,
		FinalPath:  finalPath,
		FileName:   filepath.Base(finalPath),
		Size:       staged.Size,
		HashSHA256: digest,
		Security:   &report,
		Cleanup:    cleanup,
	}, nil
}

// UploadBatch processes files strictly in order as one logical transaction.
// On the first rejected or failed upload it disposes the cleanup handle of
// every prior committed outcome, in reverse order, before returning a
// failed BatchOutcome. Rollback failures are logged, never propagated, and
// never mask the original failure.
func (s *uploadService) UploadBatch(files []BatchFile) *models.BatchOutcome {
	batch := &models.BatchOutcome{}

	for i, file := range files {
		outcome, err := s.UploadFile(file.Content, file.Options)
		if err != nil {
			logging.Log.Errorf("Batch upload failed at file %d (%q): %v", i, file.Options.OriginalName, err)
			batch.Outcomes = append(batch.Outcomes, models.UploadOutcome{
				Committed:    false,
				RejectReason: err.Error(),
			})
			s.rollback(batch)
			return batch
		}

		batch.Outcomes = append(batch.Outcomes, *outcome)
		if !outcome.Committed {
			logging.Log.Infof("Batch upload rejected at file %d (%q): %s", i, file.Options.OriginalName, outcome.RejectReason)
			s.rollback(batch)
			return batch
		}
		batch.TotalSize += outcome.Size
	}

	batch.Success = true
	return batch
}

// rollback disposes every committed outcome in the batch in reverse order,
// for predictable diagnostics. Best-effort: cleanup failures are logged and
// swallowed.
func (s *uploadService) rollback(batch *models.BatchOutcome) {
	batch.Success = false
	if s.metrics != nil {
		s.metrics.BatchRollbacks.Inc()
	}

	for i := len(batch.Outcomes) - 1; i >= 0; i-- {
		outcome := batch.Outcomes[i]
		if !outcome.Committed || outcome.Cleanup == nil {
			continue
		}
		if err := outcome.Cleanup.Dispose(); err != nil {
			logging.Log.Warnf("Batch rollback failed to delete %s: %v", outcome.FinalPath, err)
			continue
		}
		logging.Log.Infof("Batch rollback deleted %s.", outcome.FinalPath)
	}
}

// VerifyIntegrity re-reads a previously committed file and checks its size
// and SHA-256 digest against the expected values. False on mismatch, on a
// path outside the final store, or on any read failure.
func (s *uploadService) VerifyIntegrity(path, expectedHash string, expectedSize int64) bool {
	if !storage.IsWithinRoot(path, s.allocator.Root()) {
		logging.Log.Warnf("Integrity check refused for path outside final store: %s", path)
		return false
	}

	ok, err := storage.VerifyFile(path, expectedHash, expectedSize)
	if err != nil {
		logging.Log.Warnf("Integrity check could not read %s: %v", path, err)
		return false
	}
	if !ok {
		logging.Log.Warnf("Integrity mismatch for %s.", path)
	}
	return ok
}

// GetUploadStatistics aggregates counts and bytes across the staging root
// and the final store root. Results are cached briefly; the traversal
// itself is read-only and safe to run at any time.
func (s *uploadService) GetUploadStatistics() (*models.UploadStatistics, error) {
	if cached, found := s.statsCache.Get(statsCacheKey); found {
		stats := cached.(models.UploadStatistics)
		return &stats, nil
	}

	stagedStats, err := storage.MeasureTree(s.staging.Root())
	if err != nil {
		return nil, err
	}
	finalStats, err := storage.MeasureTree(s.allocator.Root())
	if err != nil {
		return nil, err
	}

	stats := models.UploadStatistics{
		StagedCount: stagedStats.FileCount,
		StagedBytes: stagedStats.TotalBytes,
		FinalCount:  finalStats.FileCount,
		FinalBytes:  finalStats.TotalBytes,
	}
	s.statsCache.Set(statsCacheKey, stats, gocache.DefaultExpiration)
	return &stats, nil
}

func (s *uploadService) discardOnError(staged *storage.StagedFile) {
	if err := s.staging.Discard(staged); err != nil {
		logging.Log.Warnf("Failed to discard staged file %s after error: %v", staged.Path, err)
	}
}

func (s *uploadService) countRejection(reason string) {
	if s.metrics != nil {
		s.metrics.DocumentsRejected.WithLabelValues(reason).Inc()
	}
}
