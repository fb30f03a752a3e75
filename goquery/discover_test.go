package goquery_test

import (
	"testing"

	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	d := goquery.NewLinkDiscoverer(contactcrawl.DefaultConfig())

	t.Run("finds important links in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/products">Products</a>
<a href="/contact">Contact</a>
<a href="/mentions-legales">Mentions légales</a>
<a href="/a-propos">Qui sommes-nous</a>
</body></html>`

		links, err := d.Discover(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/contact",
			"https://example.com/mentions-legales",
			"https://example.com/a-propos",
		}, links)
	})

	t.Run("matches on anchor text when the href is opaque", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/page?id=42">Nous contacter</a></body></html>`

		links, err := d.Discover(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/page?id=42"}, links)
	})

	t.Run("discards cross-domain links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="https://other.org/contact">Contact</a>
<a href="https://shop.example.com/contact">Contact</a>
</body></html>`

		links, err := d.Discover(html, "https://example.com")

		require.NoError(t, err)
		// Subdomains share the registrable domain and are kept.
		assert.Equal(t, []string{"https://shop.example.com/contact"}, links)
	})

	t.Run("deduplicates repeated links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/contact">Contact</a>
<a href="/contact">Contact (footer)</a>
</body></html>`

		links, err := d.Discover(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/contact"}, links)
	})
}
