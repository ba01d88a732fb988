package ui

import (
	"fmt"
	"sync"
	"time"
)

// StatusTracker counts the outcome of each attachment during a run
type StatusTracker struct {
	mu         sync.Mutex
	downloaded int
	skipped    int
	failed     int
	bytes      int64
	startTime  time.Time
	now        func() time.Time
}

// NewStatusTracker creates a new status tracker
func NewStatusTracker() *StatusTracker {
	return newStatusTracker(time.Now)
}

func newStatusTracker(now func() time.Time) *StatusTracker {
	return &StatusTracker{startTime: now(), now: now}
}

// Downloaded records a completed transfer of size bytes
func (st *StatusTracker) Downloaded(size int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.downloaded++
	st.bytes += size
}

// Skipped records an attachment whose file already existed
func (st *StatusTracker) Skipped() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.skipped++
}

// Failed records an attachment that could not be saved
func (st *StatusTracker) Failed() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.failed++
}

// Counts returns downloaded, skipped and failed totals
func (st *StatusTracker) Counts() (downloaded, skipped, failed int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.downloaded, st.skipped, st.failed
}

// GetElapsedTime returns the elapsed time since tracking started
func (st *StatusTracker) GetElapsedTime() time.Duration {
	return st.now().Sub(st.startTime)
}

// GetDownloadRate returns the average download rate (files per minute)
func (st *StatusTracker) GetDownloadRate() float64 {
	elapsed := st.GetElapsedTime().Minutes()
	if elapsed <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return float64(st.downloaded) / elapsed
}

// Fields returns the totals for structured logging
func (st *StatusTracker) Fields() map[string]interface{} {
	downloaded, skipped, failed := st.Counts()
	return map[string]interface{}{
		"downloaded": downloaded,
		"skipped":    skipped,
		"failed":     failed,
		"bytes":      st.bytesTotal(),
		"elapsed":    st.GetElapsedTime().Round(time.Millisecond).String(),
	}
}

// String returns a one line status
func (st *StatusTracker) String() string {
	downloaded, skipped, failed := st.Counts()
	return fmt.Sprintf("downloaded %d, skipped %d, failed %d in %s (%s)",
		downloaded, skipped, failed,
		st.GetElapsedTime().Round(time.Second),
		FormatBytes(st.bytesTotal()))
}

func (st *StatusTracker) bytesTotal() int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.bytes
}

// FormatBytes renders n using binary units
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
