package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/crawl"
	"github.com/fwojciec/contactcrawl/csv"
	"github.com/google/uuid"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	batchID := c.Batch
	if batchID == "" {
		batchID = uuid.New().String()
	}

	tasks, err := csv.ReadTasksAny(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactcrawl.ErrorMessage(err))
		return err
	}
	if len(tasks) == 0 {
		return contactcrawl.Errorf(contactcrawl.EINVALID, "no sites with a usable URL in %q", c.File)
	}

	fmt.Fprintf(deps.Stdout, "Crawling %d sites (batch %s)\n", len(tasks), batchID)

	results, report, err := runBatch(deps, batchID, fileStem(c.File), tasks)
	if err != nil {
		return err
	}

	printReport(deps, report, results)
	return nil
}

// runBatch crawls the tasks, persists each result, and writes the batch
// artifacts. It is shared by the crawl and worker commands.
func runBatch(deps *Dependencies, batchID, name string, tasks []contactcrawl.SiteTask) ([]*contactcrawl.SiteResult, contactcrawl.Report, error) {
	start := time.Now()

	results, err := deps.Scheduler.Run(deps.Ctx, tasks)
	if err != nil {
		return nil, contactcrawl.Report{}, err
	}

	for _, result := range results {
		result.BatchID = batchID
		if err := deps.Results.SaveResult(deps.Ctx, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving result for %s: %s\n", result.URL, contactcrawl.ErrorMessage(err))
		}
	}

	report := crawl.NewReport(results, time.Since(start))

	if _, err := deps.Writer.WriteBatch(results, report); err != nil {
		return nil, contactcrawl.Report{}, fmt.Errorf("failed to write batch results: %w", err)
	}
	exportPath, err := deps.Writer.WriteExport(name, batchID, results)
	if err != nil {
		return nil, contactcrawl.Report{}, fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Export written to %s\n", exportPath)
	return results, report, nil
}

func printReport(deps *Dependencies, report contactcrawl.Report, results []*contactcrawl.SiteResult) {
	fmt.Fprintf(deps.Stdout, "\nSites crawled: %d\n", report.TotalSites)
	fmt.Fprintf(deps.Stdout, "Successful: %d (%.1f%%)\n", report.Successful, report.SuccessRate)
	fmt.Fprintf(deps.Stdout, "Failed: %d\n", report.Failed)
	fmt.Fprintf(deps.Stdout, "Emails found: %d\n", report.TotalEmails)
	fmt.Fprintf(deps.Stdout, "Pages visited: %d\n", report.TotalPagesVisited)

	platforms := make([]string, 0, len(report.SocialMediaStats))
	for platform := range report.SocialMediaStats {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	for _, platform := range platforms {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", platform, report.SocialMediaStats[platform])
	}

	fmt.Fprintf(deps.Stdout, "Total time: %.2fs (%.2fs per site)\n",
		report.TotalTimeSeconds, report.AverageTimePerSite)
}

// fileStem returns the file name without its directory and extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
