// Package slog provides logging decorators for contactcrawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contactcrawl"
)

// Ensure LoggingFetcher implements contactcrawl.Fetcher.
var _ contactcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   contactcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next contactcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Probe delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Probe(ctx context.Context, url string) (ok bool) {
	defer func(begin time.Time) {
		f.logger.Debug("probe",
			"url", url,
			"ok", ok,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Probe(ctx, url)
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
