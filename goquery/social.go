package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/contactcrawl"
)

// Ensure SocialExtractor implements contactcrawl.SocialExtractor.
var _ contactcrawl.SocialExtractor = (*SocialExtractor)(nil)

// SocialExtractor detects social media profile links using per-platform
// URL patterns compiled once at construction.
type SocialExtractor struct {
	platforms []socialPlatform
}

type socialPlatform struct {
	name     string
	patterns []*regexp.Regexp
}

// NewSocialExtractor compiles the configured platform patterns.
func NewSocialExtractor(cfg contactcrawl.Config) *SocialExtractor {
	platforms := make([]socialPlatform, 0, len(cfg.SocialNetworks))
	for _, network := range cfg.SocialNetworks {
		p := socialPlatform{name: network.Platform}
		for _, pattern := range network.Patterns {
			p.patterns = append(p.patterns, regexp.MustCompile(pattern))
		}
		platforms = append(platforms, p)
	}
	return &SocialExtractor{platforms: platforms}
}

// Extract scans anchor hrefs and the raw visible text (to catch un-linked
// mentions) for profile URLs. Matches are normalized and deduplicated per
// platform, insertion order preserved.
func (s *SocialExtractor) Extract(html string, pageURL string) (map[string][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, contactcrawl.Errorf(contactcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	found := make(map[string][]string)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		for _, platform := range s.platforms {
			for _, pattern := range platform.patterns {
				if match := pattern.FindString(href); match != "" {
					addSocialURL(found, platform.name, normalizeSocialURL(match))
				}
			}
		}
	})

	text := doc.Text()
	for _, platform := range s.platforms {
		for _, pattern := range platform.patterns {
			for _, match := range pattern.FindAllString(text, -1) {
				addSocialURL(found, platform.name, normalizeSocialURL(match))
			}
		}
	}

	return found, nil
}

// wwwHosts are long-form platform hosts commonly written with and without
// a www prefix. Short-link hosts (fb.com, wa.me, t.me) are left as-is.
var wwwHosts = []string{
	"facebook.com/",
	"instagram.com/",
	"twitter.com/",
	"x.com/",
	"linkedin.com/",
	"youtube.com/",
	"tiktok.com/",
}

// normalizeSocialURL forces an https scheme, canonicalizes the www prefix
// of long-form hosts, strips the query string, and strips the trailing
// slash, so URL variants of one profile collapse to one string.
func normalizeSocialURL(url string) string {
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "https://")
	for _, host := range wwwHosts {
		if strings.HasPrefix(strings.ToLower(url), host) {
			url = "www." + url
			break
		}
	}
	url = "https://" + url

	if idx := strings.Index(url, "?"); idx != -1 {
		url = url[:idx]
	}
	return strings.TrimRight(url, "/")
}

// addSocialURL appends a URL to a platform's list unless already present.
func addSocialURL(found map[string][]string, platform string, url string) {
	for _, existing := range found[platform] {
		if existing == url {
			return
		}
	}
	found[platform] = append(found[platform], url)
}
