package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/contactcrawl"
	main "github.com/fwojciec/contactcrawl/cmd/contactcrawl"
	"github.com/fwojciec/contactcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists results with status and counts", func(t *testing.T) {
		t.Parallel()

		results := &mock.ResultService{
			FindResultsFn: func(_ context.Context, filter contactcrawl.ResultFilter) ([]*contactcrawl.SiteResult, error) {
				return []*contactcrawl.SiteResult{
					{
						ID:     "res-1",
						URL:    "https://acme.com",
						Status: contactcrawl.StatusSuccess,
						Emails: []contactcrawl.EmailRecord{{Email: "info@acme.com"}},
						SocialMedia: map[string][]string{
							"facebook": {"https://fb.com/acmepage"},
						},
					},
					{
						ID:     "res-2",
						URL:    "https://broken.example",
						Status: contactcrawl.StatusError,
						Error:  "invalid URL",
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Results: results,
		}

		cmd := &main.ResultsCmd{Limit: 50}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "res-1")
		assert.Contains(t, output, "emails=1 social=1")
		assert.Contains(t, output, "res-2")
		assert.Contains(t, output, "error")
	})

	t.Run("passes filters through", func(t *testing.T) {
		t.Parallel()

		var got contactcrawl.ResultFilter
		results := &mock.ResultService{
			FindResultsFn: func(_ context.Context, filter contactcrawl.ResultFilter) ([]*contactcrawl.SiteResult, error) {
				got = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Results: results,
		}

		cmd := &main.ResultsCmd{Batch: "batch-1", Status: "success", Limit: 10, Offset: 5}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, got.BatchID)
		assert.Equal(t, "batch-1", *got.BatchID)
		require.NotNil(t, got.Status)
		assert.Equal(t, contactcrawl.StatusSuccess, *got.Status)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, 5, got.Offset)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Results: &mock.ResultService{},
		}

		cmd := &main.ResultsCmd{Status: "weird"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, contactcrawl.EINVALID, contactcrawl.ErrorCode(err))
	})

	t.Run("prints message when empty", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Results: &mock.ResultService{},
		}

		cmd := &main.ResultsCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No results found.")
	})
}
