package main

import (
	"fmt"

	"github.com/fwojciec/contactcrawl"
)

// Run executes the results command.
func (c *ResultsCmd) Run(deps *Dependencies) error {
	filter := contactcrawl.ResultFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Batch != "" {
		filter.BatchID = &c.Batch
	}
	if c.Status != "" {
		status := contactcrawl.SiteStatus(c.Status)
		if status != contactcrawl.StatusSuccess && status != contactcrawl.StatusError {
			return contactcrawl.Errorf(contactcrawl.EINVALID, "invalid status %q (want success or error)", c.Status)
		}
		filter.Status = &status
	}

	results, err := deps.Results.FindResults(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactcrawl.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
		return nil
	}

	for _, r := range results {
		social := 0
		for _, urls := range r.SocialMedia {
			social += len(urls)
		}
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %s  emails=%d social=%d\n",
			r.ID, r.Status, r.URL, len(r.Emails), social)
	}

	return nil
}
