package contactcrawl_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/contactcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteTask_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		task := contactcrawl.SiteTask{URL: "https://example.com", Name: "Example"}
		assert.NoError(t, task.Validate())
	})

	t.Run("missing URL", func(t *testing.T) {
		t.Parallel()
		task := contactcrawl.SiteTask{Name: "Example"}
		assert.Equal(t, contactcrawl.EINVALID, contactcrawl.ErrorCode(task.Validate()))
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		task := contactcrawl.SiteTask{URL: "https://example.com"}
		assert.Equal(t, contactcrawl.EINVALID, contactcrawl.ErrorCode(task.Validate()))
	})
}

func TestSiteResult_Export(t *testing.T) {
	t.Parallel()

	result := &contactcrawl.SiteResult{
		URL:    "https://acme.com",
		Name:   "Acme",
		Status: contactcrawl.StatusSuccess,
		Emails: []contactcrawl.EmailRecord{
			{Email: "info@acme.com", Type: contactcrawl.EmailContactGeneral},
			{Email: "support@acme.com", Type: contactcrawl.EmailServiceClient},
		},
		SocialMedia: map[string][]string{
			"facebook": {"https://fb.com/acmepage"},
		},
	}

	export := result.Export(1)

	assert.Equal(t, 1, export.ID)
	assert.Equal(t, "https://acme.com", export.URL)
	assert.Equal(t, "Acme", export.Nom)
	assert.Equal(t, 2, export.NbEmails)
	assert.Equal(t, []string{"info@acme.com", "support@acme.com"}, export.Emails)
	assert.Equal(t, 1, export.NbReseauxSociaux)
	assert.Equal(t, map[string][]string{"facebook": {"https://fb.com/acmepage"}}, export.ReseauxSociaux)
}

func TestSiteResult_Export_JSONShape(t *testing.T) {
	t.Parallel()

	result := &contactcrawl.SiteResult{
		URL:    "https://acme.com",
		Name:   "Acme",
		Emails: []contactcrawl.EmailRecord{{Email: "info@acme.com"}},
		SocialMedia: map[string][]string{
			"facebook": {"https://fb.com/acmepage"},
		},
	}

	raw, err := json.Marshal(result.Export(3))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, float64(3), decoded["id"])
	assert.Equal(t, "Acme", decoded["nom"])
	assert.Equal(t, float64(1), decoded["nb_emails"])
	assert.Equal(t, float64(1), decoded["nb_reseaux_sociaux"])
	assert.Contains(t, decoded, "reseaux_sociaux")
}
