// Package fs provides file-based persistence for crawl artifacts: progress
// snapshots, final result files, and the directory job queue.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fwojciec/contactcrawl"
)

// Ensure SnapshotSink implements contactcrawl.SnapshotSink at compile time.
var _ contactcrawl.SnapshotSink = (*SnapshotSink)(nil)

// SnapshotSink writes incremental progress files to a results directory.
// Each call produces a new timestamped file holding every result collected
// so far, so the latest file is always a complete picture of the batch.
type SnapshotSink struct {
	dir string

	mu  sync.Mutex
	seq int
	now func() time.Time
}

// NewSnapshotSink creates a SnapshotSink writing to dir.
func NewSnapshotSink(dir string) *SnapshotSink {
	return &SnapshotSink{dir: dir, now: time.Now}
}

// Snapshot writes the accumulated results to a new progress file.
func (s *SnapshotSink) Snapshot(ctx context.Context, results []*contactcrawl.SiteResult) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.seq++
	// The sequence suffix keeps snapshots distinct when groups finish
	// within the same second.
	name := fmt.Sprintf("progress_%s_%03d.json", s.now().Format("20060102_150405"), s.seq)
	s.mu.Unlock()

	return os.WriteFile(filepath.Join(s.dir, name), data, 0644)
}
