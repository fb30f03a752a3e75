package contactcrawl

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// PageType classifies a page by its URL shape.
type PageType string

// Page types recognized by PageTypeOf.
const (
	PageHome    PageType = "home"
	PageContact PageType = "contact"
	PageLegal   PageType = "legal"
	PageCGV     PageType = "cgv"
	PageCGU     PageType = "cgu"
	PagePrivacy PageType = "privacy"
	PageAbout   PageType = "about"
	PageOther   PageType = "other"
)

// RegistrableDomain extracts the public-suffix-aware root domain of a URL
// (e.g. "https://www.shop.example.co.uk/x" → "example.co.uk").
// Returns "" if the URL has no registrable domain.
func RegistrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" {
		// Allow bare hosts like "example.com".
		host = strings.TrimSuffix(u.Path, "/")
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return ""
	}
	return domain
}

// BaseURL returns the scheme and host of a URL (e.g. "https://example.com").
func BaseURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// IsValidURL reports whether a URL is an absolute http or https URL with a
// host.
func IsValidURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// NormalizeURL resolves href against baseURL, returning an absolute URL.
// Already-absolute hrefs are returned unchanged.
func NormalizeURL(href string, baseURL string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// SameDomain reports whether two URLs share a registrable domain.
func SameDomain(url1, url2 string) bool {
	d1 := RegistrableDomain(url1)
	d2 := RegistrableDomain(url2)
	return d1 != "" && d2 != "" && d1 == d2
}

// PageTypeOf classifies a page from its URL shape.
func PageTypeOf(rawURL string) PageType {
	lower := strings.ToLower(rawURL)

	if strings.HasSuffix(lower, "/") || strings.Count(lower, "/") <= 3 {
		return PageHome
	}
	if containsAny(lower, "contact", "coordonnee") {
		return PageContact
	}
	if containsAny(lower, "mention", "legal-notice") {
		return PageLegal
	}
	if containsAny(lower, "cgv", "conditions-generales-vente") {
		return PageCGV
	}
	if containsAny(lower, "cgu", "conditions-generales-utilisation", "terms") {
		return PageCGU
	}
	if containsAny(lower, "privacy", "confidentialite", "rgpd", "donnees-personnelles") {
		return PagePrivacy
	}
	if containsAny(lower, "about", "a-propos", "qui-sommes-nous") {
		return PageAbout
	}
	return PageOther
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
