package goquery_test

import (
	"testing"

	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailExtractor_Extract(t *testing.T) {
	t.Parallel()

	cfg := contactcrawl.DefaultConfig()

	t.Run("extracts email from visible text", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor("https://example.com", cfg)
		html := `<html><body><p>Write to contact@example.com for details.</p></body></html>`

		records, err := e.Extract(html, "https://example.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "contact@example.com", records[0].Email)
		assert.Equal(t, "body", records[0].Section)
		assert.Equal(t, contactcrawl.EmailContactGeneral, records[0].Type)
		assert.Contains(t, records[0].Context, "Write to")
	})

	t.Run("extracts mailto targets with the enclosing section", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor("https://example.com", cfg)
		html := `<html><body>
<footer><a href="mailto:support@example.com?subject=hi">Support</a></footer>
</body></html>`

		records, err := e.Extract(html, "https://example.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "support@example.com", records[0].Email)
		assert.Equal(t, "footer", records[0].Section)
		assert.Equal(t, contactcrawl.EmailServiceClient, records[0].Type)
	})

	t.Run("deobfuscates [at]/[dot] text", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor("https://example.com", cfg)
		html := `<html><body><p>contact [at] example [dot] com</p></body></html>`

		records, err := e.Extract(html, "https://example.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "contact@example.com", records[0].Email)
	})

	t.Run("filters by domain membership", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor("https://example.com", cfg)
		html := `<html><body>
<p>contact@example.com</p>
<p>info@sales.example.com</p>
<p>someone@gmail.com</p>
<p>random@other.org</p>
</body></html>`

		records, err := e.Extract(html, "https://example.com/")

		require.NoError(t, err)
		emails := make([]string, 0, len(records))
		for _, r := range records {
			emails = append(emails, r.Email)
		}
		assert.Equal(t, []string{"contact@example.com", "info@sales.example.com", "someone@gmail.com"}, emails)
	})

	t.Run("deduplicates case-insensitively keeping the first source", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor("https://example.com", cfg)
		html := `<html><body>
<p>Contact@Example.com</p>
<footer><a href="mailto:contact@example.com">Contact</a></footer>
</body></html>`

		records, err := e.Extract(html, "https://example.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "contact@example.com", records[0].Email)
		// Text extraction runs before mailto extraction.
		assert.Equal(t, "body", records[0].Section)
	})

	t.Run("extracts from nested JSON-LD and skips malformed blocks", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor("https://example.com", cfg)
		html := `<html><head>
<script type="application/ld+json">{"@type":"Organization","contactPoint":{"email":"dpo@example.com"}}</script>
<script type="application/ld+json">{not valid json</script>
</head><body></body></html>`

		records, err := e.Extract(html, "https://example.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "dpo@example.com", records[0].Email)
		assert.Equal(t, "json-ld", records[0].Section)
		assert.Equal(t, contactcrawl.EmailDPO, records[0].Type)
	})

	t.Run("extracts from meta tag content", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor("https://example.com", cfg)
		html := `<html><head>
<meta name="contact" content="reach us at hello@example.com">
</head><body></body></html>`

		records, err := e.Extract(html, "https://example.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "hello@example.com", records[0].Email)
		assert.Equal(t, "meta", records[0].Section)
		assert.Equal(t, "Meta contact", records[0].Context)
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor("https://example.com", cfg)
		html := `<html><body><p>contact@example.com and sales@example.com</p></body></html>`

		first, err := e.Extract(html, "https://example.com/")
		require.NoError(t, err)
		second, err := e.Extract(html, "https://example.com/")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, second, 2)
	})
}
