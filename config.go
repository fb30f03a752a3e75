package contactcrawl

import "time"

// SectionSelectors names a prioritized HTML section and the CSS selectors
// that locate it. Sections are scanned in slice order.
type SectionSelectors struct {
	Name      string
	Selectors []string
}

// SocialPatterns names a social platform and the regex patterns that match
// its profile URLs.
type SocialPatterns struct {
	Platform string
	Patterns []string
}

// Config carries every knob the crawling engine consumes. All values are
// injected; DefaultConfig returns the production defaults.
type Config struct {
	// Timeout bounds one full page fetch.
	Timeout time.Duration

	// ProbeTimeout bounds the cheap existence probe.
	ProbeTimeout time.Duration

	// ProbeFailOpen treats probe errors (as opposed to non-200 statuses)
	// as "page exists", so servers that reject HEAD are still fetched.
	ProbeFailOpen bool

	// Delay is the pause between successful fetches within one site.
	Delay time.Duration

	// MaxRetries is the number of retries after the initial attempt for
	// transient failures (timeouts, connection errors, HTTP 429).
	MaxRetries int

	// BackoffFactor drives the 429 backoff: BackoffFactor^attempt seconds.
	BackoffFactor float64

	// RetryPause is the fixed pause between attempts for transport errors,
	// distinct from the 429 backoff.
	RetryPause time.Duration

	// SiteTimeout is the wall-clock budget for one site's entire crawl.
	SiteTimeout time.Duration

	// MaxPagesPerSite bounds how many pages are fetched per site.
	MaxPagesPerSite int

	// MaxConcurrentSites is the group size for concurrent site crawls.
	MaxConcurrentSites int

	// PagesToScrape are the well-known paths tried on every site, in order.
	PagesToScrape []string

	// ImportantLinkPattern matches hrefs and anchor text of links worth
	// following from the home page.
	ImportantLinkPattern string

	// Sections are the prioritized HTML sections re-scanned for emails.
	Sections []SectionSelectors

	// SocialNetworks are the platform URL patterns to detect.
	SocialNetworks []SocialPatterns

	// EmailProviders are public email hosting domains always accepted by
	// the domain-membership filter.
	EmailProviders []string

	// UserAgents is the rotating client-identity pool.
	UserAgents []string

	// Headers is the baseline header set sent with every request.
	Headers map[string]string
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:            10 * time.Second,
		ProbeTimeout:       5 * time.Second,
		ProbeFailOpen:      true,
		Delay:              100 * time.Millisecond,
		MaxRetries:         2,
		BackoffFactor:      2,
		RetryPause:         1 * time.Second,
		SiteTimeout:        30 * time.Second,
		MaxPagesPerSite:    7,
		MaxConcurrentSites: 15,
		PagesToScrape: []string{
			"/",
			"/contact",
			"/contactez-nous",
			"/nous-contacter",
			"/mentions-legales",
			"/mentions-légales",
			"/legal-notice",
		},
		ImportantLinkPattern: `(?i)(contact|mention|legal|cgv|cgu|condition|privacy|privac|rgpd|about|propos|qui-sommes)`,
		Sections: []SectionSelectors{
			{Name: "footer", Selectors: []string{"footer", ".footer", ".site-footer", "#footer", `[class*="footer"]`}},
			{Name: "header", Selectors: []string{"header", ".header", ".site-header", "#header", "nav", ".navbar", ".navigation"}},
			{Name: "contact", Selectors: []string{".contact", "#contact", ".contact-info", ".contact-section", `[class*="contact"]`}},
			{Name: "legal", Selectors: []string{".legal", ".mentions", `[class*="legal"]`, `[class*="mention"]`}},
			{Name: "sidebar", Selectors: []string{".sidebar", ".aside", "aside", `[class*="sidebar"]`}},
		},
		SocialNetworks: []SocialPatterns{
			{Platform: "facebook", Patterns: []string{
				`(?i)(?:https?://)?(?:www\.)?(?:facebook\.com|fb\.com|fb\.me)/[\w\-.]+`,
				`(?i)(?:https?://)?(?:www\.)?(?:facebook\.com|fb\.com)/pages/[\w\-./]+`,
			}},
			{Platform: "instagram", Patterns: []string{
				`(?i)(?:https?://)?(?:www\.)?instagram\.com/[\w\-.]+`,
			}},
			{Platform: "twitter", Patterns: []string{
				`(?i)(?:https?://)?(?:www\.)?(?:twitter\.com|x\.com)/[\w\-]+`,
			}},
			{Platform: "linkedin", Patterns: []string{
				`(?i)(?:https?://)?(?:www\.)?linkedin\.com/(?:company|in)/[\w\-]+`,
			}},
			{Platform: "youtube", Patterns: []string{
				`(?i)(?:https?://)?(?:www\.)?youtube\.com/(?:c|channel|user)/[\w\-]+`,
				`(?i)(?:https?://)?(?:www\.)?youtube\.com/@[\w\-]+`,
			}},
			{Platform: "tiktok", Patterns: []string{
				`(?i)(?:https?://)?(?:www\.)?tiktok\.com/@[\w\-.]+`,
			}},
			{Platform: "whatsapp", Patterns: []string{
				`(?i)(?:https?://)?(?:wa\.me|api\.whatsapp\.com)/\d+`,
			}},
			{Platform: "telegram", Patterns: []string{
				`(?i)(?:https?://)?(?:t\.me|telegram\.me)/[\w\-]+`,
			}},
		},
		EmailProviders: []string{
			"gmail.com", "googlemail.com",
			"hotmail.com", "hotmail.fr",
			"outlook.com", "outlook.fr",
			"yahoo.com", "yahoo.fr",
			"laposte.net", "orange.fr", "wanadoo.fr", "free.fr", "sfr.fr",
			"live.com", "live.fr", "msn.com",
			"icloud.com", "me.com", "mac.com",
			"aol.com",
			"protonmail.com", "protonmail.ch",
			"yandex.com", "mail.com", "gmx.com", "zoho.com",
		},
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
		},
		Headers: map[string]string{
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language":           "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7",
			"Accept-Encoding":           "gzip, deflate, br",
			"DNT":                       "1",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
		},
	}
}
