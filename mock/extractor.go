package mock

import "github.com/fwojciec/contactcrawl"

var (
	_ contactcrawl.EmailExtractor  = (*EmailExtractor)(nil)
	_ contactcrawl.SocialExtractor = (*SocialExtractor)(nil)
	_ contactcrawl.LinkDiscoverer  = (*LinkDiscoverer)(nil)
)

// EmailExtractor is a mock implementation of contactcrawl.EmailExtractor.
type EmailExtractor struct {
	ExtractFn func(html string, pageURL string) ([]contactcrawl.EmailRecord, error)
}

func (e *EmailExtractor) Extract(html string, pageURL string) ([]contactcrawl.EmailRecord, error) {
	if e.ExtractFn == nil {
		return nil, nil
	}
	return e.ExtractFn(html, pageURL)
}

// EmailExtractorFactory returns a factory that always yields the given
// extractor.
func EmailExtractorFactory(e contactcrawl.EmailExtractor) contactcrawl.EmailExtractorFactory {
	return func(string) contactcrawl.EmailExtractor { return e }
}

// SocialExtractor is a mock implementation of contactcrawl.SocialExtractor.
type SocialExtractor struct {
	ExtractFn func(html string, pageURL string) (map[string][]string, error)
}

func (s *SocialExtractor) Extract(html string, pageURL string) (map[string][]string, error) {
	if s.ExtractFn == nil {
		return nil, nil
	}
	return s.ExtractFn(html, pageURL)
}

// LinkDiscoverer is a mock implementation of contactcrawl.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverFn func(html string, baseURL string) ([]string, error)
}

func (d *LinkDiscoverer) Discover(html string, baseURL string) ([]string, error) {
	if d.DiscoverFn == nil {
		return nil, nil
	}
	return d.DiscoverFn(html, baseURL)
}
