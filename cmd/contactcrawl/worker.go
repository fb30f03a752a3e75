package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/csv"
)

// Run executes the worker command: it pulls jobs off the queue and crawls
// their site lists until stopped.
func (c *WorkerCmd) Run(deps *Dependencies) error {
	interval, err := time.ParseDuration(c.Interval)
	if err != nil {
		return contactcrawl.Errorf(contactcrawl.EINVALID, "invalid interval %q", c.Interval)
	}

	for {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		job, err := deps.Queue.Next()
		if contactcrawl.ErrorCode(err) == contactcrawl.ENOTFOUND {
			if c.Once {
				fmt.Fprintln(deps.Stdout, "No pending jobs")
				return nil
			}
			select {
			case <-deps.Ctx.Done():
				return deps.Ctx.Err()
			case <-time.After(interval):
			}
			continue
		}
		if err != nil {
			return err
		}

		if err := c.process(deps, job); err != nil {
			fmt.Fprintf(deps.Stderr, "job %s failed: %s\n", job.ID, contactcrawl.ErrorMessage(err))
		}

		if c.Once {
			return nil
		}
	}
}

// process runs one job end to end. Job failures are recorded in the queue;
// only infrastructure errors propagate.
func (c *WorkerCmd) process(deps *Dependencies, job *contactcrawl.Job) error {
	fmt.Fprintf(deps.Stdout, "Processing job %s (%s)\n", job.ID, job.File)

	if err := deps.Queue.Start(job); err != nil {
		return err
	}

	tasks, err := csv.ReadTasksAny(job.File)
	if err != nil {
		_ = deps.Queue.Fail(job, contactcrawl.ErrorMessage(err))
		return err
	}
	if len(tasks) == 0 {
		err := contactcrawl.Errorf(contactcrawl.EINVALID, "no sites with a usable URL in %q", job.File)
		_ = deps.Queue.Fail(job, err.Message)
		return err
	}

	results, report, err := runBatch(deps, job.ID, fileStem(job.File), tasks)
	if err != nil {
		_ = deps.Queue.Fail(job, err.Error())
		return err
	}

	if err := deps.Queue.Complete(job); err != nil {
		return err
	}

	printReport(deps, report, results)
	fmt.Fprintf(deps.Stdout, "Job %s completed\n", job.ID)
	return nil
}
