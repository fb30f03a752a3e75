package crawl_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/crawl"
	"github.com/fwojciec/contactcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTasks(n int) []contactcrawl.SiteTask {
	tasks := make([]contactcrawl.SiteTask, n)
	for i := range tasks {
		tasks[i] = contactcrawl.SiteTask{
			URL:  fmt.Sprintf("https://site-%d.example.com", i),
			Name: fmt.Sprintf("Site %d", i),
		}
	}
	return tasks
}

func TestScheduler_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns one result per task", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Scheduler{
			Crawler: &mock.SiteCrawler{
				CrawlFn: func(_ context.Context, task contactcrawl.SiteTask) *contactcrawl.SiteResult {
					return &contactcrawl.SiteResult{URL: task.URL, Status: contactcrawl.StatusSuccess}
				},
			},
			GroupSize: 10,
		}

		results, err := s.Run(context.Background(), makeTasks(25))

		require.NoError(t, err)
		require.Len(t, results, 25)

		urls := make(map[string]struct{}, len(results))
		for _, result := range results {
			urls[result.URL] = struct{}{}
		}
		assert.Len(t, urls, 25)
	})

	t.Run("snapshots accumulated results after every group", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var snapshotSizes []int

		s := &crawl.Scheduler{
			Crawler: &mock.SiteCrawler{
				CrawlFn: func(_ context.Context, task contactcrawl.SiteTask) *contactcrawl.SiteResult {
					return &contactcrawl.SiteResult{URL: task.URL, Status: contactcrawl.StatusSuccess}
				},
			},
			Snapshots: &mock.SnapshotSink{
				SnapshotFn: func(_ context.Context, results []*contactcrawl.SiteResult) error {
					mu.Lock()
					defer mu.Unlock()
					snapshotSizes = append(snapshotSizes, len(results))
					return nil
				},
			},
			GroupSize: 10,
		}

		results, err := s.Run(context.Background(), makeTasks(25))

		require.NoError(t, err)
		require.Len(t, results, 25)
		assert.Equal(t, []int{10, 20, 25}, snapshotSizes)
	})

	t.Run("snapshot failure does not fail the batch", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Scheduler{
			Crawler: &mock.SiteCrawler{
				CrawlFn: func(_ context.Context, task contactcrawl.SiteTask) *contactcrawl.SiteResult {
					return &contactcrawl.SiteResult{URL: task.URL, Status: contactcrawl.StatusSuccess}
				},
			},
			Snapshots: &mock.SnapshotSink{
				SnapshotFn: func(_ context.Context, _ []*contactcrawl.SiteResult) error {
					return contactcrawl.Errorf(contactcrawl.EINTERNAL, "disk full")
				},
			},
			GroupSize: 5,
		}

		results, err := s.Run(context.Background(), makeTasks(7))

		require.NoError(t, err)
		assert.Len(t, results, 7)
	})

	t.Run("a failing site never fails its siblings", func(t *testing.T) {
		t.Parallel()

		s := &crawl.Scheduler{
			Crawler: &mock.SiteCrawler{
				CrawlFn: func(_ context.Context, task contactcrawl.SiteTask) *contactcrawl.SiteResult {
					if task.URL == "https://site-3.example.com" {
						return &contactcrawl.SiteResult{
							URL:    task.URL,
							Status: contactcrawl.StatusError,
							Error:  "connection refused",
						}
					}
					return &contactcrawl.SiteResult{URL: task.URL, Status: contactcrawl.StatusSuccess}
				},
			},
			GroupSize: 10,
		}

		results, err := s.Run(context.Background(), makeTasks(10))

		require.NoError(t, err)
		require.Len(t, results, 10)

		var failed int
		for _, result := range results {
			if result.Status == contactcrawl.StatusError {
				failed++
			}
		}
		assert.Equal(t, 1, failed)
	})

	t.Run("canceled context stops between groups", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		s := &crawl.Scheduler{
			Crawler: &mock.SiteCrawler{
				CrawlFn: func(_ context.Context, task contactcrawl.SiteTask) *contactcrawl.SiteResult {
					cancel()
					return &contactcrawl.SiteResult{URL: task.URL, Status: contactcrawl.StatusSuccess}
				},
			},
			GroupSize: 2,
		}

		results, err := s.Run(ctx, makeTasks(6))

		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, results, 2)
	})

	t.Run("defaults group size when unset", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var snapshots int

		s := &crawl.Scheduler{
			Crawler: &mock.SiteCrawler{
				CrawlFn: func(_ context.Context, task contactcrawl.SiteTask) *contactcrawl.SiteResult {
					return &contactcrawl.SiteResult{URL: task.URL, Status: contactcrawl.StatusSuccess}
				},
			},
			Snapshots: &mock.SnapshotSink{
				SnapshotFn: func(_ context.Context, _ []*contactcrawl.SiteResult) error {
					mu.Lock()
					defer mu.Unlock()
					snapshots++
					return nil
				},
			},
		}

		results, err := s.Run(context.Background(), makeTasks(15))

		require.NoError(t, err)
		assert.Len(t, results, 15)
		assert.Equal(t, 1, snapshots) // 15 sites fit in one default-size group
	})
}
