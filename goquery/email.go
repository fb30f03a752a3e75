// Package goquery provides goquery-based implementations of the HTML
// extraction interfaces: emails, social media profiles, and important-link
// discovery.
package goquery

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/contactcrawl"
)

// emailPatterns are tried in order against text sources. The obfuscated
// variants are deobfuscated before validation.
var emailPatterns = []*regexp.Regexp{
	// standard
	regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
	// accented local part or domain
	regexp.MustCompile(`(?i)[A-Za-zÀ-ÿ0-9._%+\-]+@[A-Za-zÀ-ÿ0-9.\-]+\.[A-Za-z]{2,}`),
	// obfuscated with [at] / (at) and [dot] / (dot)
	regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+\-]+\s*[\[(]at[\])]\s*[A-Za-z0-9.\-]+\s*[\[(]dot[\])]\s*[A-Za-z]{2,}\b`),
	// spaced-out @ and .
	regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+\-]+\s*@\s*[A-Za-z0-9.\-]+\s*\.\s*[A-Za-z]{2,}\b`),
}

var (
	obfuscatedAtRE  = regexp.MustCompile(`(?i)\s*[\[(]at[\])]\s*`)
	obfuscatedDotRE = regexp.MustCompile(`(?i)\s*[\[(]dot[\])]\s*`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
	mailtoTargetRE  = regexp.MustCompile(`(?i)^mailto:([^?&]+)`)
)

// contextRadius is the number of characters kept on each side of a match.
const contextRadius = 80

// Ensure EmailExtractor implements contactcrawl.EmailExtractor.
var _ contactcrawl.EmailExtractor = (*EmailExtractor)(nil)

// EmailExtractor extracts trusted emails from HTML. It is constructed per
// site and is stateless across Extract calls.
type EmailExtractor struct {
	siteDomain string
	providers  map[string]struct{}
	sections   []contactcrawl.SectionSelectors
	logger     *slog.Logger
}

// EmailOption configures an EmailExtractor.
type EmailOption func(*EmailExtractor)

// WithEmailLogger sets the logger used for keep/discard decisions.
func WithEmailLogger(logger *slog.Logger) EmailOption {
	return func(e *EmailExtractor) {
		e.logger = logger
	}
}

// NewEmailExtractor creates an extractor for one site. The site's
// registrable domain anchors the domain-membership filter.
func NewEmailExtractor(siteURL string, cfg contactcrawl.Config, opts ...EmailOption) *EmailExtractor {
	providers := make(map[string]struct{}, len(cfg.EmailProviders))
	for _, p := range cfg.EmailProviders {
		providers[strings.ToLower(p)] = struct{}{}
	}
	e := &EmailExtractor{
		siteDomain: contactcrawl.RegistrableDomain(siteURL),
		providers:  providers,
		sections:   cfg.Sections,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract combines five sources (visible text, mailto links, prioritized
// sections, JSON-LD, meta tags), then filters candidates by domain
// membership and deduplicates by email string, first-seen wins.
func (e *EmailExtractor) Extract(html string, pageURL string) ([]contactcrawl.EmailRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, contactcrawl.Errorf(contactcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	// Script and style contents are not visible text; strip them from a
	// second parse so the structured sources below still see the full
	// document.
	textDoc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, contactcrawl.Errorf(contactcrawl.EINVALID, "failed to parse HTML: %v", err)
	}
	textDoc.Find("script, style, noscript").Remove()

	var candidates []contactcrawl.EmailRecord
	candidates = append(candidates, e.fromText(textDoc.Text(), pageURL, "body")...)
	candidates = append(candidates, e.fromMailto(doc, pageURL)...)
	candidates = append(candidates, e.fromSections(textDoc, pageURL)...)
	candidates = append(candidates, e.fromJSONLD(doc, pageURL)...)
	candidates = append(candidates, e.fromMeta(doc, pageURL)...)

	return e.dedupeAndFilter(candidates), nil
}

// fromText scans raw text with every email pattern.
func (e *EmailExtractor) fromText(text string, pageURL string, section string) []contactcrawl.EmailRecord {
	var records []contactcrawl.EmailRecord

	for _, pattern := range emailPatterns {
		for _, raw := range pattern.FindAllString(text, -1) {
			email := contactcrawl.CleanEmail(deobfuscate(raw))
			if !contactcrawl.ValidEmail(email) {
				continue
			}
			context := contactcrawl.ContextAround(text, raw, contextRadius)
			records = append(records, contactcrawl.EmailRecord{
				Email:   email,
				Page:    pageURL,
				Section: section,
				Context: context,
				Type:    contactcrawl.ClassifyEmail(email, context),
			})
		}
	}

	return records
}

// fromMailto extracts targets of mailto: links.
func (e *EmailExtractor) fromMailto(doc *goquery.Document, pageURL string) []contactcrawl.EmailRecord {
	var records []contactcrawl.EmailRecord

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := mailtoTargetRE.FindStringSubmatch(href)
		if m == nil {
			return
		}
		email := contactcrawl.CleanEmail(m[1])
		if !contactcrawl.ValidEmail(email) {
			return
		}

		context := strings.TrimSpace(sel.Text())
		if parent := sel.Parent(); parent.Length() > 0 {
			parentText := strings.TrimSpace(parent.Text())
			if len(parentText) > 100 {
				parentText = parentText[:100]
			}
			context += " " + parentText
		}

		records = append(records, contactcrawl.EmailRecord{
			Email:   email,
			Page:    pageURL,
			Section: e.parentSection(sel),
			Context: context,
			Type:    contactcrawl.ClassifyEmail(email, context),
		})
	})

	return records
}

// fromSections re-scans the text of prioritized sections, tagging the
// section name.
func (e *EmailExtractor) fromSections(doc *goquery.Document, pageURL string) []contactcrawl.EmailRecord {
	var records []contactcrawl.EmailRecord

	for _, section := range e.sections {
		for _, selector := range section.Selectors {
			doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
				records = append(records, e.fromText(sel.Text(), pageURL, section.Name)...)
			})
		}
	}

	return records
}

// fromJSONLD walks embedded structured-data blocks looking for email keys.
// Malformed blocks are skipped; the walk uses an explicit work stack so
// attacker-controlled nesting cannot exhaust the call stack.
func (e *EmailExtractor) fromJSONLD(doc *goquery.Document, pageURL string) []contactcrawl.EmailRecord {
	var records []contactcrawl.EmailRecord

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			e.logger.Debug("skipping malformed JSON-LD block", "page", pageURL, "err", err)
			return
		}

		for _, found := range emailsInValue(data) {
			email := contactcrawl.CleanEmail(found)
			if !contactcrawl.ValidEmail(email) {
				continue
			}
			records = append(records, contactcrawl.EmailRecord{
				Email:   email,
				Page:    pageURL,
				Section: "json-ld",
				Context: "Schema.org structured data",
				Type:    contactcrawl.ClassifyEmail(email, ""),
			})
		}
	})

	return records
}

// fromMeta scans meta tag content attributes containing "@".
func (e *EmailExtractor) fromMeta(doc *goquery.Document, pageURL string) []contactcrawl.EmailRecord {
	var records []contactcrawl.EmailRecord

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content, _ := sel.Attr("content")
		if content == "" || !strings.Contains(content, "@") {
			return
		}

		name, ok := sel.Attr("name")
		if !ok {
			name, _ = sel.Attr("property")
		}

		for _, pattern := range emailPatterns {
			for _, raw := range pattern.FindAllString(content, -1) {
				email := contactcrawl.CleanEmail(deobfuscate(raw))
				if !contactcrawl.ValidEmail(email) {
					continue
				}
				records = append(records, contactcrawl.EmailRecord{
					Email:   email,
					Page:    pageURL,
					Section: "meta",
					Context: "Meta " + name,
					Type:    contactcrawl.ClassifyEmail(email, ""),
				})
			}
		}
	})

	return records
}

// emailsInValue collects string values under "email"/"e-mail"/"mail" keys
// anywhere in a decoded JSON value, using a work stack instead of
// recursion.
func emailsInValue(v any) []string {
	var out []string

	stack := []any{v}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t := cur.(type) {
		case map[string]any:
			for key, val := range t {
				switch strings.ToLower(key) {
				case "email", "e-mail", "mail":
					if s, ok := val.(string); ok {
						out = append(out, s)
						continue
					}
				}
				stack = append(stack, val)
			}
		case []any:
			for _, item := range t {
				stack = append(stack, item)
			}
		}
	}

	return out
}

// parentSection locates the nearest enclosing prioritized section of an
// element, matching by tag name only. Defaults to "body".
func (e *EmailExtractor) parentSection(sel *goquery.Selection) string {
	for _, section := range e.sections {
		for _, selector := range section.Selectors {
			tag := strings.SplitN(strings.TrimLeft(selector, ".#"), "[", 2)[0]
			if tag == "" {
				continue
			}
			if sel.ParentsFiltered(tag).Length() > 0 {
				return section.Name
			}
		}
	}
	return "body"
}

// deobfuscate reverses common human-readable email obfuscation.
func deobfuscate(email string) string {
	email = obfuscatedAtRE.ReplaceAllString(email, "@")
	email = obfuscatedDotRE.ReplaceAllString(email, ".")
	return whitespaceRE.ReplaceAllString(email, "")
}

// dedupeAndFilter keeps the first-seen record per email that passes the
// domain-membership filter, logging each decision.
func (e *EmailExtractor) dedupeAndFilter(candidates []contactcrawl.EmailRecord) []contactcrawl.EmailRecord {
	seen := make(map[string]struct{})
	var kept []contactcrawl.EmailRecord

	for _, record := range candidates {
		if _, ok := seen[record.Email]; ok {
			continue
		}
		if contactcrawl.EmailBelongsToDomain(record.Email, e.siteDomain, e.providers) {
			seen[record.Email] = struct{}{}
			kept = append(kept, record)
			e.logger.Debug("email kept", "email", record.Email, "domain", e.siteDomain, "section", record.Section)
		} else {
			e.logger.Debug("email discarded", "email", record.Email, "domain", e.siteDomain)
		}
	}

	return kept
}
