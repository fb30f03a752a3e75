// Package crawl provides the crawling engine: a per-site crawler that
// fetches a bounded page set and runs the extractors, and a scheduler that
// fans site crawls out in fixed-size concurrent groups.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/contactcrawl"
	"golang.org/x/time/rate"
)

// maxDiscoveredLinks caps how many important links found on the home page
// are added to the crawl queue.
const maxDiscoveredLinks = 5

// Compile-time interface verification.
var _ contactcrawl.SiteCrawler = (*Crawler)(nil)

// Crawler crawls one site at a time: it builds the page queue from the
// home page and the well-known paths, fetches pages in order under the
// page-count and wall-clock budgets, and aggregates extraction results.
type Crawler struct {
	Fetcher contactcrawl.Fetcher
	Emails  contactcrawl.EmailExtractorFactory
	Social  contactcrawl.SocialExtractor
	Links   contactcrawl.LinkDiscoverer
	Config  contactcrawl.Config
	Logger  *slog.Logger
}

// Crawl runs the full crawl for one site and always returns a finalized
// result: every failure, including panics, is contained at this boundary.
func (c *Crawler) Crawl(ctx context.Context, task contactcrawl.SiteTask) (result *contactcrawl.SiteResult) {
	start := time.Now()

	result = &contactcrawl.SiteResult{
		URL:          task.URL,
		Name:         task.Name,
		Status:       contactcrawl.StatusCrawling,
		PagesVisited: []contactcrawl.PageVisit{},
		Emails:       []contactcrawl.EmailRecord{},
		SocialMedia:  map[string][]string{},
	}

	defer func() {
		if r := recover(); r != nil {
			result.Status = contactcrawl.StatusError
			result.Error = fmt.Sprint(r)
		}
		result.ScrapingTime = round2(time.Since(start).Seconds())
	}()

	logger := c.logger()
	logger.Info("crawl started", "site", task.Name, "url", task.URL)

	if !contactcrawl.IsValidURL(task.URL) {
		result.Status = contactcrawl.StatusError
		result.Error = "invalid URL"
		return result
	}

	c.crawlPages(ctx, task, result)

	result.Emails = dedupeEmails(result.Emails)
	result.Status = contactcrawl.StatusSuccess

	logger.Info("crawl finished",
		"site", task.Name,
		"pages", len(result.PagesVisited),
		"emails", len(result.Emails),
		"platforms", len(result.SocialMedia),
	)

	return result
}

// crawlPages runs the page loop under the per-site wall-clock budget.
// Exceeding the budget abandons remaining pages but keeps collected data;
// the result notes "global timeout" without being an error.
func (c *Crawler) crawlPages(ctx context.Context, task contactcrawl.SiteTask, result *contactcrawl.SiteResult) {
	siteCtx, cancel := context.WithTimeout(ctx, c.Config.SiteTimeout)
	defer cancel()

	base := contactcrawl.BaseURL(task.URL)
	emails := c.Emails(task.URL)

	// Inter-request pacing. Backoff sleeps inside the fetcher also run
	// under siteCtx, so they consume the same wall-clock budget.
	limiter := rate.NewLimiter(rate.Every(c.Config.Delay), 1)

	// Queue membership is keyed on the URL without its trailing slash so
	// the "/" well-known path does not re-enqueue the home page.
	queue := []string{task.URL}
	queued := map[string]struct{}{queueKey(task.URL): {}}
	for _, path := range c.Config.PagesToScrape {
		u := contactcrawl.NormalizeURL(path, base)
		if _, ok := queued[queueKey(u)]; !ok {
			queued[queueKey(u)] = struct{}{}
			queue = append(queue, u)
		}
	}

	// The visited set is owned by this crawl; nothing is shared with
	// sibling crawls.
	visited := make(map[string]struct{})
	contentHashes := make(map[uint64]struct{})
	visitedCount := 0
	discovered := false

	for i := 0; i < len(queue); i++ {
		if visitedCount >= c.Config.MaxPagesPerSite {
			break
		}
		if siteCtx.Err() != nil {
			result.Error = "global timeout"
			return
		}

		pageURL := queue[i]
		if _, ok := visited[pageURL]; ok {
			continue
		}

		// A failed probe skips the page without counting it against the
		// page budget.
		if !c.Fetcher.Probe(siteCtx, pageURL) {
			continue
		}

		if err := limiter.Wait(siteCtx); err != nil {
			result.Error = "global timeout"
			return
		}

		html, err := c.Fetcher.Fetch(siteCtx, pageURL)
		if err != nil {
			if siteCtx.Err() != nil {
				result.Error = "global timeout"
				return
			}
			result.PagesVisited = append(result.PagesVisited, contactcrawl.PageVisit{
				URL:    pageURL,
				Type:   contactcrawl.PageTypeOf(pageURL),
				Status: "failed",
			})
			visitedCount++
			continue
		}

		visited[pageURL] = struct{}{}
		visitedCount++

		// Sites often alias their well-known paths to the home page;
		// identical bodies are recorded but not re-extracted.
		hash := xxhash.Sum64String(html)
		if _, ok := contentHashes[hash]; ok {
			result.PagesVisited = append(result.PagesVisited, contactcrawl.PageVisit{
				URL:    pageURL,
				Type:   contactcrawl.PageTypeOf(pageURL),
				Status: "duplicate",
			})
			continue
		}
		contentHashes[hash] = struct{}{}

		visit := contactcrawl.PageVisit{
			URL:    pageURL,
			Type:   contactcrawl.PageTypeOf(pageURL),
			Status: "success",
		}

		records, err := emails.Extract(html, pageURL)
		if err != nil {
			c.logger().Debug("email extraction failed", "url", pageURL, "err", err)
		}
		result.Emails = append(result.Emails, records...)
		visit.EmailsFound = len(records)

		social, err := c.Social.Extract(html, pageURL)
		if err != nil {
			c.logger().Debug("social extraction failed", "url", pageURL, "err", err)
		}
		for platform, urls := range social {
			for _, u := range urls {
				addUnique(result.SocialMedia, platform, u)
			}
			visit.SocialFound += len(urls)
		}

		result.PagesVisited = append(result.PagesVisited, visit)

		// The first successful page (normally the home page) seeds the
		// queue with discovered important links.
		if !discovered {
			discovered = true
			links, err := c.Links.Discover(html, base)
			if err != nil {
				c.logger().Debug("link discovery failed", "url", pageURL, "err", err)
			}
			added := 0
			for _, link := range links {
				if added >= maxDiscoveredLinks {
					break
				}
				if _, ok := queued[queueKey(link)]; ok {
					continue
				}
				queued[queueKey(link)] = struct{}{}
				queue = append(queue, link)
				added++
			}
		}
	}
}

// queueKey canonicalizes a URL for queue-membership checks.
func queueKey(u string) string {
	return strings.TrimRight(u, "/")
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// dedupeEmails keeps the first-seen record per email string.
func dedupeEmails(records []contactcrawl.EmailRecord) []contactcrawl.EmailRecord {
	seen := make(map[string]struct{}, len(records))
	deduped := make([]contactcrawl.EmailRecord, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.Email]; ok {
			continue
		}
		seen[record.Email] = struct{}{}
		deduped = append(deduped, record)
	}
	return deduped
}

// addUnique appends a URL to a platform's list unless already present.
func addUnique(social map[string][]string, platform string, url string) {
	for _, existing := range social[platform] {
		if existing == url {
			return
		}
	}
	social[platform] = append(social[platform], url)
}

// round2 rounds to two decimal places for the reported elapsed seconds.
func round2(seconds float64) float64 {
	return math.Round(seconds*100) / 100
}
