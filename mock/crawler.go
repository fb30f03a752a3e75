package mock

import (
	"context"

	"github.com/fwojciec/contactcrawl"
)

var _ contactcrawl.SiteCrawler = (*SiteCrawler)(nil)

// SiteCrawler is a mock implementation of contactcrawl.SiteCrawler.
type SiteCrawler struct {
	CrawlFn func(ctx context.Context, task contactcrawl.SiteTask) *contactcrawl.SiteResult
}

func (c *SiteCrawler) Crawl(ctx context.Context, task contactcrawl.SiteTask) *contactcrawl.SiteResult {
	return c.CrawlFn(ctx, task)
}
