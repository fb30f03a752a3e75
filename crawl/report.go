package crawl

import (
	"math"
	"time"

	"github.com/fwojciec/contactcrawl"
)

// NewReport aggregates batch statistics from a finished result set.
func NewReport(results []*contactcrawl.SiteResult, elapsed time.Duration) contactcrawl.Report {
	report := contactcrawl.Report{
		Timestamp:        time.Now(),
		TotalSites:       len(results),
		SocialMediaStats: make(map[string]int),
		TotalTimeSeconds: round2(elapsed.Seconds()),
	}

	for _, result := range results {
		if result.Status == contactcrawl.StatusSuccess {
			report.Successful++
		} else {
			report.Failed++
		}
		report.TotalEmails += len(result.Emails)
		report.TotalPagesVisited += len(result.PagesVisited)
		for platform, urls := range result.SocialMedia {
			report.SocialMediaStats[platform] += len(urls)
		}
	}

	if report.TotalSites > 0 {
		report.SuccessRate = math.Round(float64(report.Successful)/float64(report.TotalSites)*1000) / 10
		report.AverageTimePerSite = round2(report.TotalTimeSeconds / float64(report.TotalSites))
	}

	return report
}
