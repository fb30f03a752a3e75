package main

import (
	"fmt"

	"github.com/fwojciec/contactcrawl"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	job := &contactcrawl.Job{
		File:     c.File,
		User:     c.User,
		Priority: c.Priority,
	}

	if err := deps.Queue.Enqueue(job); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Enqueued job %s (priority %d)\n", job.ID, job.Priority)
	return nil
}
