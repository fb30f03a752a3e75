package contactcrawl

import (
	"context"
	"time"
)

// SiteStatus is the terminal state of a site crawl.
type SiteStatus string

// Site crawl states. A crawl moves pending → crawling → success|error.
const (
	StatusPending  SiteStatus = "pending"
	StatusCrawling SiteStatus = "crawling"
	StatusSuccess  SiteStatus = "success"
	StatusError    SiteStatus = "error"
)

// SiteTask describes one organization website to crawl.
// URL and Name are required; the remaining fields are passthrough metadata
// from the directory the lead list was harvested from.
type SiteTask struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
	Rating   string `json:"rating,omitempty"`
}

// Validate returns an error if the task contains invalid fields.
func (t *SiteTask) Validate() error {
	if t.URL == "" {
		return Errorf(EINVALID, "site URL required")
	}
	if t.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	return nil
}

// PageVisit records the outcome of one crawled page.
type PageVisit struct {
	URL         string   `json:"url"`
	Type        PageType `json:"type"`
	Status      string   `json:"status"` // "success", "failed" or "duplicate"
	EmailsFound int      `json:"emails_found"`
	SocialFound int      `json:"social_found"`
}

// SiteResult is the aggregated outcome of crawling one site.
// It is created when the crawl starts, mutated only by the owning crawl,
// and finalized exactly once.
type SiteResult struct {
	ID           string              `json:"id,omitempty"`
	BatchID      string              `json:"batch_id,omitempty"`
	URL          string              `json:"url"`
	Name         string              `json:"name"`
	Status       SiteStatus          `json:"status"`
	ScrapingTime float64             `json:"scraping_time"` // seconds
	PagesVisited []PageVisit         `json:"pages_visited"`
	Emails       []EmailRecord       `json:"emails"`
	SocialMedia  map[string][]string `json:"social_media"`
	Error        string              `json:"error,omitempty"`
	CreatedAt    time.Time           `json:"created_at,omitempty"`
}

// Export is the simplified per-site JSON shape consumed by downstream
// tooling.
type Export struct {
	ID               int                 `json:"id"`
	URL              string              `json:"url"`
	Nom              string              `json:"nom"`
	NbEmails         int                 `json:"nb_emails"`
	Emails           []string            `json:"emails"`
	NbReseauxSociaux int                 `json:"nb_reseaux_sociaux"`
	ReseauxSociaux   map[string][]string `json:"reseaux_sociaux"`
}

// Export converts the result to its simplified external shape.
func (r *SiteResult) Export(id int) Export {
	emails := make([]string, 0, len(r.Emails))
	for _, e := range r.Emails {
		emails = append(emails, e.Email)
	}
	social := 0
	for _, urls := range r.SocialMedia {
		social += len(urls)
	}
	return Export{
		ID:               id,
		URL:              r.URL,
		Nom:              r.Name,
		NbEmails:         len(emails),
		Emails:           emails,
		NbReseauxSociaux: social,
		ReseauxSociaux:   r.SocialMedia,
	}
}

// SiteCrawler crawls one site and produces its result.
// Implementations must contain every failure at the site boundary: a
// returned result always has a terminal status, never an in-flight one.
type SiteCrawler interface {
	Crawl(ctx context.Context, task SiteTask) *SiteResult
}

// ResultService persists and retrieves finished site results.
type ResultService interface {
	// SaveResult stores a finalized result.
	SaveResult(ctx context.Context, result *SiteResult) error

	// FindResults retrieves results matching the filter.
	FindResults(ctx context.Context, filter ResultFilter) ([]*SiteResult, error)

	// DeleteResultsByBatch removes all results for a batch.
	DeleteResultsByBatch(ctx context.Context, batchID string) error
}

// ResultFilter represents a filter for FindResults.
type ResultFilter struct {
	BatchID *string
	Status  *SiteStatus

	Offset int
	Limit  int
}
