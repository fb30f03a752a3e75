package mock

import "github.com/fwojciec/contactcrawl"

var _ contactcrawl.JobQueue = (*JobQueue)(nil)

// JobQueue is a mock implementation of contactcrawl.JobQueue.
type JobQueue struct {
	EnqueueFn  func(job *contactcrawl.Job) error
	NextFn     func() (*contactcrawl.Job, error)
	StartFn    func(job *contactcrawl.Job) error
	CompleteFn func(job *contactcrawl.Job) error
	FailFn     func(job *contactcrawl.Job, reason string) error
}

func (q *JobQueue) Enqueue(job *contactcrawl.Job) error {
	if q.EnqueueFn == nil {
		return nil
	}
	return q.EnqueueFn(job)
}

func (q *JobQueue) Next() (*contactcrawl.Job, error) {
	if q.NextFn == nil {
		return nil, contactcrawl.Errorf(contactcrawl.ENOTFOUND, "no pending jobs")
	}
	return q.NextFn()
}

func (q *JobQueue) Start(job *contactcrawl.Job) error {
	if q.StartFn == nil {
		return nil
	}
	return q.StartFn(job)
}

func (q *JobQueue) Complete(job *contactcrawl.Job) error {
	if q.CompleteFn == nil {
		return nil
	}
	return q.CompleteFn(job)
}

func (q *JobQueue) Fail(job *contactcrawl.Job, reason string) error {
	if q.FailFn == nil {
		return nil
	}
	return q.FailFn(job, reason)
}
