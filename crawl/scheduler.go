package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/contactcrawl"
	"golang.org/x/sync/errgroup"
)

// Scheduler partitions a site list into fixed-size groups and crawls each
// group concurrently, snapshotting accumulated results after every group.
// No site failure ever fails the batch.
type Scheduler struct {
	Crawler   contactcrawl.SiteCrawler
	Snapshots contactcrawl.SnapshotSink
	GroupSize int
	Logger    *slog.Logger
}

// Run crawls every site and returns one result per input task. Within a
// group results are collected in completion order, not submission order.
// Run stops early only if the batch context is canceled.
func (s *Scheduler) Run(ctx context.Context, sites []contactcrawl.SiteTask) ([]*contactcrawl.SiteResult, error) {
	size := s.GroupSize
	if size <= 0 {
		size = contactcrawl.DefaultConfig().MaxConcurrentSites
	}

	results := make([]*contactcrawl.SiteResult, 0, len(sites))

	for start := 0; start < len(sites); start += size {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		group := sites[start:min(start+size, len(sites))]
		s.logger().Info("processing group", "group", start/size+1, "sites", len(group))

		resultCh := make(chan *contactcrawl.SiteResult, len(group))
		g, gctx := errgroup.WithContext(ctx)
		for _, task := range group {
			g.Go(func() error {
				resultCh <- s.Crawler.Crawl(gctx, task)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)

		for result := range resultCh {
			results = append(results, result)
		}

		if s.Snapshots != nil {
			// Snapshots are best-effort progress markers; a failed write
			// never fails the batch.
			if err := s.Snapshots.Snapshot(ctx, results); err != nil {
				s.logger().Warn("snapshot failed", "err", err)
			}
		}
	}

	return results, nil
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
