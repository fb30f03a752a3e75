package contactcrawl

import "time"

// Report summarizes a finished batch run.
type Report struct {
	Timestamp          time.Time      `json:"timestamp"`
	TotalSites         int            `json:"total_sites"`
	Successful         int            `json:"successful"`
	Failed             int            `json:"failed"`
	SuccessRate        float64        `json:"success_rate"` // percent
	TotalEmails        int            `json:"total_emails"`
	TotalPagesVisited  int            `json:"total_pages_visited"`
	SocialMediaStats   map[string]int `json:"social_media_stats"`
	TotalTimeSeconds   float64        `json:"total_time_seconds"`
	AverageTimePerSite float64        `json:"average_time_per_site"`
}
