package contactcrawl

// SocialExtractor detects social media profile links in one page's HTML.
type SocialExtractor interface {
	// Extract scans both anchor hrefs and raw visible text for
	// platform-specific URL patterns and returns normalized, per-platform
	// deduplicated profile URLs keyed by platform name.
	Extract(html string, pageURL string) (map[string][]string, error)
}
