package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/contactcrawl"
)

// Ensure LinkDiscoverer implements contactcrawl.LinkDiscoverer.
var _ contactcrawl.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer finds same-domain links worth crawling by matching an
// important-link heuristic against hrefs and anchor text.
type LinkDiscoverer struct {
	pattern *regexp.Regexp
}

// NewLinkDiscoverer compiles the configured important-link pattern.
func NewLinkDiscoverer(cfg contactcrawl.Config) *LinkDiscoverer {
	return &LinkDiscoverer{pattern: regexp.MustCompile(cfg.ImportantLinkPattern)}
}

// Discover returns important same-domain links in document order,
// deduplicated by absolute URL. Cross-domain links are discarded. The
// caller bounds how many results it uses.
func (d *LinkDiscoverer) Discover(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, contactcrawl.Errorf(contactcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}

		full := contactcrawl.NormalizeURL(href, baseURL)
		if !contactcrawl.SameDomain(full, baseURL) {
			return
		}
		if !d.pattern.MatchString(full) && !d.pattern.MatchString(sel.Text()) {
			return
		}
		if _, ok := seen[full]; ok {
			return
		}
		seen[full] = struct{}{}
		links = append(links, full)
	})

	return links, nil
}
