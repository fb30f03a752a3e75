package mock

import (
	"context"

	"github.com/fwojciec/contactcrawl"
)

var _ contactcrawl.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of contactcrawl.ResultService.
type ResultService struct {
	SaveResultFn           func(ctx context.Context, result *contactcrawl.SiteResult) error
	FindResultsFn          func(ctx context.Context, filter contactcrawl.ResultFilter) ([]*contactcrawl.SiteResult, error)
	DeleteResultsByBatchFn func(ctx context.Context, batchID string) error
}

func (s *ResultService) SaveResult(ctx context.Context, result *contactcrawl.SiteResult) error {
	if s.SaveResultFn == nil {
		return nil
	}
	return s.SaveResultFn(ctx, result)
}

func (s *ResultService) FindResults(ctx context.Context, filter contactcrawl.ResultFilter) ([]*contactcrawl.SiteResult, error) {
	if s.FindResultsFn == nil {
		return nil, nil
	}
	return s.FindResultsFn(ctx, filter)
}

func (s *ResultService) DeleteResultsByBatch(ctx context.Context, batchID string) error {
	if s.DeleteResultsByBatchFn == nil {
		return nil
	}
	return s.DeleteResultsByBatchFn(ctx, batchID)
}
