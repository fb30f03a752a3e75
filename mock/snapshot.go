package mock

import (
	"context"

	"github.com/fwojciec/contactcrawl"
)

var _ contactcrawl.SnapshotSink = (*SnapshotSink)(nil)

// SnapshotSink is a mock implementation of contactcrawl.SnapshotSink.
type SnapshotSink struct {
	SnapshotFn func(ctx context.Context, results []*contactcrawl.SiteResult) error
}

func (s *SnapshotSink) Snapshot(ctx context.Context, results []*contactcrawl.SiteResult) error {
	if s.SnapshotFn == nil {
		return nil
	}
	return s.SnapshotFn(ctx, results)
}
