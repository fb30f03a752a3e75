package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/contactcrawl"
	"github.com/google/uuid"
)

// Ensure Queue implements contactcrawl.JobQueue at compile time.
var _ contactcrawl.JobQueue = (*Queue)(nil)

// Queue is a directory-backed job queue. A job is one JSON file; its state
// is the folder it sits in. Moves are write-then-remove, with no locking
// or crash-recovery guarantees.
type Queue struct {
	baseDir string
}

// NewQueue creates a Queue rooted at baseDir. Jobs move between the
// pending, processing, completed and failed subdirectories.
func NewQueue(baseDir string) *Queue {
	return &Queue{baseDir: baseDir}
}

func (q *Queue) dir(status string) string {
	return filepath.Join(q.baseDir, status)
}

// Enqueue adds a job to the pending queue, assigning an ID and creation
// time if absent.
func (q *Queue) Enqueue(job *contactcrawl.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.Priority == 0 {
		job.Priority = 5
	}
	job.Status = contactcrawl.JobPending

	return q.write(job, contactcrawl.JobPending)
}

// Next returns the highest-priority pending job: lowest priority number
// first, then oldest. Returns ENOTFOUND when the queue is empty.
func (q *Queue) Next() (*contactcrawl.Job, error) {
	entries, err := os.ReadDir(q.dir(contactcrawl.JobPending))
	if os.IsNotExist(err) {
		return nil, contactcrawl.Errorf(contactcrawl.ENOTFOUND, "no pending jobs")
	}
	if err != nil {
		return nil, err
	}

	var jobs []*contactcrawl.Job
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		job, err := q.read(filepath.Join(q.dir(contactcrawl.JobPending), entry.Name()))
		if err != nil {
			// An unreadable job file never blocks the rest of the queue.
			continue
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return nil, contactcrawl.Errorf(contactcrawl.ENOTFOUND, "no pending jobs")
	}

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Priority != jobs[j].Priority {
			return jobs[i].Priority < jobs[j].Priority
		}
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})

	return jobs[0], nil
}

// Start moves a pending job to processing.
func (q *Queue) Start(job *contactcrawl.Job) error {
	job.Status = contactcrawl.JobProcessing
	return q.move(job, contactcrawl.JobPending, contactcrawl.JobProcessing)
}

// Complete moves a processing job to completed.
func (q *Queue) Complete(job *contactcrawl.Job) error {
	job.Status = contactcrawl.JobCompleted
	return q.move(job, contactcrawl.JobProcessing, contactcrawl.JobCompleted)
}

// Fail moves a processing job to failed, recording the reason.
func (q *Queue) Fail(job *contactcrawl.Job, reason string) error {
	job.Status = contactcrawl.JobFailed
	job.Error = reason
	return q.move(job, contactcrawl.JobProcessing, contactcrawl.JobFailed)
}

func (q *Queue) filename(job *contactcrawl.Job) string {
	return fmt.Sprintf("%s.json", job.ID)
}

func (q *Queue) write(job *contactcrawl.Job, status string) error {
	if err := os.MkdirAll(q.dir(status), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(q.dir(status), q.filename(job)), data, 0644)
}

func (q *Queue) read(path string) (*contactcrawl.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var job contactcrawl.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// move writes the job into its new folder, then removes the old file.
func (q *Queue) move(job *contactcrawl.Job, from, to string) error {
	if err := q.write(job, to); err != nil {
		return err
	}
	old := filepath.Join(q.dir(from), q.filename(job))
	if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
