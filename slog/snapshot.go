package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contactcrawl"
)

// Ensure LoggingSnapshotSink implements contactcrawl.SnapshotSink.
var _ contactcrawl.SnapshotSink = (*LoggingSnapshotSink)(nil)

// LoggingSnapshotSink wraps a SnapshotSink with progress logging.
type LoggingSnapshotSink struct {
	next   contactcrawl.SnapshotSink
	logger *slog.Logger
}

// NewLoggingSnapshotSink creates a new LoggingSnapshotSink.
func NewLoggingSnapshotSink(next contactcrawl.SnapshotSink, logger *slog.Logger) *LoggingSnapshotSink {
	return &LoggingSnapshotSink{next: next, logger: logger}
}

// Snapshot delegates to the wrapped sink and logs the operation.
func (s *LoggingSnapshotSink) Snapshot(ctx context.Context, results []*contactcrawl.SiteResult) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot",
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Snapshot(ctx, results)
}
