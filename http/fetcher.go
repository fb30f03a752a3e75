// Package http provides an HTTP-based implementation of
// contactcrawl.Fetcher with existence probing, bounded retries, and
// rotating client-identity headers.
package http

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/fwojciec/contactcrawl"
)

// failure kinds returned by fetchOnce, deciding the retry policy.
const (
	failNone = iota
	failTransient
	failRateLimited
	failPermanent
)

// Ensure Fetcher implements contactcrawl.Fetcher at compile time.
var _ contactcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages over plain HTTP. It does not execute
// JavaScript.
type Fetcher struct {
	client        *http.Client
	probeTimeout  time.Duration
	probeFailOpen bool
	maxRetries    int
	backoffFactor float64
	backoffUnit   time.Duration
	retryPause    time.Duration
	userAgents    []string
	headers       map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBackoffUnit sets the time unit of the rate-limit backoff
// (BackoffFactor^attempt units). Defaults to one second; useful for testing
// without waiting for real delays.
func WithBackoffUnit(d time.Duration) Option {
	return func(f *Fetcher) {
		f.backoffUnit = d
	}
}

// NewFetcher creates a Fetcher from the crawl configuration.
func NewFetcher(cfg contactcrawl.Config, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:        &http.Client{Timeout: cfg.Timeout},
		probeTimeout:  cfg.ProbeTimeout,
		probeFailOpen: cfg.ProbeFailOpen,
		maxRetries:    cfg.MaxRetries,
		backoffFactor: cfg.BackoffFactor,
		backoffUnit:   time.Second,
		retryPause:    cfg.RetryPause,
		userAgents:    cfg.UserAgents,
		headers:       cfg.Headers,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Probe checks reachability with a HEAD request under a short timeout.
// A non-200 status means unreachable; a transport error is resolved by the
// fail-open policy, since some servers reject HEAD outright.
func (f *Fetcher) Probe(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, f.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return f.probeFailOpen
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Fetch retrieves the page body, following redirects. HTTP 429 is retried
// with exponential backoff (BackoffFactor^attempt); timeouts and transport
// errors are retried after a fixed pause. Retries stop after MaxRetries,
// so a URL is attempted at most MaxRetries+1 times. Any other non-200
// status fails immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		html, kind, err := f.fetchOnce(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if kind == failPermanent || attempt >= f.maxRetries {
			break
		}

		wait := f.retryPause
		if kind == failRateLimited {
			wait = time.Duration(math.Pow(f.backoffFactor, float64(attempt)) * float64(f.backoffUnit))
		}
		if err := sleep(ctx, wait); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

// fetchOnce performs a single GET and classifies the failure, if any.
func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", failPermanent, contactcrawl.Errorf(contactcrawl.EINVALID, "invalid request for %s: %v", url, err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", failTransient, contactcrawl.Errorf(contactcrawl.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", failTransient, contactcrawl.Errorf(contactcrawl.EUNAVAILABLE, "read %s: %v", url, err)
		}
		return string(body), failNone, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", failRateLimited, contactcrawl.Errorf(contactcrawl.EUNAVAILABLE, "rate limited on %s", url)
	default:
		return "", failPermanent, contactcrawl.Errorf(contactcrawl.EINTERNAL, "HTTP %d for %s", resp.StatusCode, url)
	}
}

// setHeaders applies the baseline header set and a rotated User-Agent.
func (f *Fetcher) setHeaders(req *http.Request) {
	for k, v := range f.headers {
		// The transport negotiates and decodes compression itself; setting
		// Accept-Encoding manually would disable transparent gzip.
		if http.CanonicalHeaderKey(k) == "Accept-Encoding" {
			continue
		}
		req.Header.Set(k, v)
	}
	if len(f.userAgents) > 0 {
		req.Header.Set("User-Agent", f.userAgents[rand.IntN(len(f.userAgents))])
	}
}

// sleep waits for d or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
