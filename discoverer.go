package contactcrawl

// LinkDiscoverer finds additional same-domain pages worth crawling.
type LinkDiscoverer interface {
	// Discover inspects HTML for same-domain links whose href or anchor
	// text matches an "important link" heuristic (contact, legal, about,
	// terms, privacy). Results follow document order; the caller bounds
	// how many it enqueues.
	Discover(html string, baseURL string) ([]string, error)
}
