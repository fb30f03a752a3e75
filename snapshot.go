package contactcrawl

import "context"

// SnapshotSink receives periodic progress snapshots during a batch run.
// Each snapshot contains the full accumulated result list, not a diff.
type SnapshotSink interface {
	Snapshot(ctx context.Context, results []*SiteResult) error
}
