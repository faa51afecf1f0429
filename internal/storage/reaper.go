// filepath: internal/storage/reaper.go
package storage

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"docvault/internal/logging"
)

// Reaper is the background sweep that deletes staged files older than the
// retention age. It alternates between waiting for the next timer tick and
// sweeping the staging root, for the lifetime of the process. It keeps no
// persisted state: a restart simply resumes sweeping on the next tick.
type Reaper struct {
	staging  *Staging
	maxAge   time.Duration
	interval time.Duration

	timer    *time.Timer
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewReaper creates a reaper for the given staging area. maxAge must be set
// comfortably above the maximum expected single-upload duration; the age
// threshold is the only thing keeping the sweep away from in-flight
// uploads.
func NewReaper(staging *Staging, maxAge, interval time.Duration) *Reaper {
	return &Reaper{
		staging:  staging,
		maxAge:   maxAge,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start kicks off the background sweep loop.
func (r *Reaper) Start() {
	logging.Log.Infof("Starting staging reaper: retention %v, sweep interval %v.", r.maxAge, r.interval)
	r.timer = time.NewTimer(r.interval)

	go func() {
		defer close(r.done)
		for {
			select {
			case <-r.timer.C:
				r.Sweep(time.Now())
				r.timer.Reset(r.interval)
			case <-r.stopCh:
				r.timer.Stop()
				return
			}
		}
	}()
}

// Stop signals the sweep loop to exit and waits for it to finish. Safe to
// call more than once.
func (r *Reaper) Stop() {
	r.stopOnce.Do(func() {
		logging.Log.Info("Stopping staging reaper.")
		close(r.stopCh)
		<-r.done
	})
}

// Sweep deletes every staged file whose age exceeds the retention
// threshold and returns how many were removed. Stat or delete failures on
// individual files are logged and skipped; a file may legitimately vanish
// mid-sweep when a concurrent upload commits it.
func (r *Reaper) Sweep(now time.Time) int {
	entries, err := os.ReadDir(r.staging.Root())
	if err != nil {
		logging.Log.Warnf("Reaper could not list staging root: %v", err)
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logging.Log.Debugf("Reaper skipping %s: %v", entry.Name(), err)
			continue
		}
		if now.Sub(info.ModTime()) <= r.maxAge {
			continue
		}

		path := filepath.Join(r.staging.Root(), entry.Name())
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				logging.Log.Warnf("Reaper failed to delete %s: %v", path, err)
			}
			continue
		}
		removed++
		logging.Log.Infof("Reaped abandoned staged file %s (age %v).", entry.Name(), now.Sub(info.ModTime()).Round(time.Second))
	}
	return removed
}
