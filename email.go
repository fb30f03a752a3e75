package contactcrawl

import (
	"regexp"
	"strings"
)

// EmailType classifies an extracted email by its likely role.
type EmailType string

// Email role classifications. Classification is display/grouping only and
// never affects filtering.
const (
	EmailContactGeneral EmailType = "contact_general"
	EmailServiceClient  EmailType = "service_client"
	EmailDPO            EmailType = "dpo"
	EmailDirection      EmailType = "direction"
	EmailCommercial     EmailType = "commercial"
	EmailPersonnel      EmailType = "personnel"
	EmailOther          EmailType = "other"
)

// EmailRecord is a trusted extracted email: a candidate that passed the
// domain-membership filter against the site's registrable domain or the
// known-provider set.
type EmailRecord struct {
	Email   string    `json:"email"`
	Page    string    `json:"page"`
	Section string    `json:"section"`
	Context string    `json:"context"`
	Type    EmailType `json:"type"`
}

// EmailExtractor extracts trusted emails from one page's HTML.
//
// Implementations are constructed per site with the site's registrable
// domain and must be stateless across calls: extracting twice from the
// same HTML yields the same records, with no accumulation.
type EmailExtractor interface {
	// Extract runs all extraction sources against the HTML, filters
	// candidates by domain membership, and deduplicates by email string
	// keeping the first-seen record in extraction order.
	Extract(html string, pageURL string) ([]EmailRecord, error)
}

// EmailExtractorFactory builds an EmailExtractor anchored to one site's
// registrable domain.
type EmailExtractorFactory func(siteURL string) EmailExtractor

var (
	validEmailRE    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	personnelRE     = regexp.MustCompile(`^[a-z]+\.[a-z]+@`)
	whitespaceRunRE = regexp.MustCompile(`\s+`)
)

// ValidEmail reports whether an email matches a conservative grammar:
// exactly one "@", non-empty local part, domain of at least 3 characters,
// no embedded whitespace.
func ValidEmail(email string) bool {
	if !validEmailRE.MatchString(email) {
		return false
	}
	if strings.Count(email, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(email, "@")
	if len(local) < 1 || len(domain) < 3 {
		return false
	}
	return !strings.Contains(email, " ")
}

// CleanEmail trims, lowercases, and strips trailing punctuation.
func CleanEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)
	return strings.TrimRight(email, ".,;:!?")
}

// EmailBelongsToDomain reports whether an email plausibly belongs to the
// site: its domain equals the site's registrable domain, is a known public
// provider, or contains the site domain (covers subdomains such as
// contact.example.com).
func EmailBelongsToDomain(email string, siteDomain string, providers map[string]struct{}) bool {
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	emailDomain := strings.ToLower(email[strings.Index(email, "@")+1:])

	if siteDomain != "" && emailDomain == strings.ToLower(siteDomain) {
		return true
	}
	if _, ok := providers[emailDomain]; ok {
		return true
	}
	if siteDomain != "" && strings.Contains(emailDomain, strings.ToLower(siteDomain)) {
		return true
	}
	return false
}

// ClassifyEmail maps local-part prefixes and surrounding context to a role.
func ClassifyEmail(email string, context string) EmailType {
	email = strings.ToLower(email)
	context = strings.ToLower(context)

	// Substring rather than prefix matching: aliases like
	// "mon-contact@example.com" classify the same as "contact@".
	switch {
	case containsAny(email, "contact@", "info@", "bonjour@", "hello@"):
		return EmailContactGeneral
	case containsAny(email, "service@", "client@", "support@", "aide@", "sav@"):
		return EmailServiceClient
	case containsAny(email, "dpo@", "rgpd@", "donnees@", "privacy@") ||
		containsAny(context, "dpo", "protection des données", "délégué"):
		return EmailDPO
	case containsAny(email, "direction@", "admin@", "directeur@"):
		return EmailDirection
	case containsAny(email, "commercial@", "vente@", "sales@"):
		return EmailCommercial
	case personnelRE.MatchString(email):
		return EmailPersonnel
	}
	return EmailOther
}

// ContextAround returns the text surrounding the first occurrence of email,
// with n characters of context on each side and whitespace runs collapsed.
func ContextAround(text string, email string, n int) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(email))
	if idx == -1 {
		return ""
	}
	start := max(0, idx-n)
	end := min(len(text), idx+len(email)+n)
	return strings.TrimSpace(whitespaceRunRE.ReplaceAllString(text[start:end], " "))
}
