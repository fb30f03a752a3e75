package contactcrawl

import "context"

// Fetcher retrieves HTML pages over the network.
type Fetcher interface {
	// Probe cheaply checks whether a URL is reachable before committing to
	// a full fetch. Probe failures may be treated as reachable (fail-open)
	// depending on configuration, since some servers reject HEAD requests.
	Probe(ctx context.Context, url string) bool

	// Fetch retrieves the page body, following redirects. Transient
	// failures (timeouts, rate limiting) are retried with backoff up to a
	// configured maximum; other non-200 statuses fail without retry.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}
