package contactcrawl

import "time"

// Job statuses as jobs move through the queue directories.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// Job describes one queued batch of sites to crawl.
type Job struct {
	ID        string    `json:"id"`
	File      string    `json:"file"` // CSV or JSON site list
	User      string    `json:"user,omitempty"`
	Priority  int       `json:"priority"` // 1 = highest
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Error     string    `json:"error,omitempty"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.File == "" {
		return Errorf(EINVALID, "job file required")
	}
	return nil
}

// JobQueue is a directory-backed work queue: jobs move between folders as
// plain file moves. It makes no locking, atomicity, or crash-recovery
// guarantees.
type JobQueue interface {
	// Enqueue adds a job to the pending queue, assigning an ID if absent.
	Enqueue(job *Job) error

	// Next returns the highest-priority pending job (priority ascending,
	// then oldest first). Returns ENOTFOUND if the queue is empty.
	Next() (*Job, error)

	// Start moves a pending job to processing.
	Start(job *Job) error

	// Complete moves a processing job to completed.
	Complete(job *Job) error

	// Fail moves a processing job to failed, recording the reason.
	Fail(job *Job, reason string) error
}
