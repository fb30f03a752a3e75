// Package mock provides function-field mock implementations of the
// contactcrawl service interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/contactcrawl"
)

var _ contactcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of contactcrawl.Fetcher.
type Fetcher struct {
	ProbeFn func(ctx context.Context, url string) bool
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Probe(ctx context.Context, url string) bool {
	if f.ProbeFn == nil {
		return true
	}
	return f.ProbeFn(ctx, url)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
