package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/trip"
)

// JobStatus represents the state of a plan job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusGenerating JobStatus = "generating"
	StatusParsing    JobStatus = "parsing"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	// StatusDegraded means a trip was saved but built from the static
	// template or the parser's placeholder record.
	StatusDegraded JobStatus = "degraded"
	StatusFailed   JobStatus = "failed"
)

// PlanRequest is what the caller asked to have planned.
type PlanRequest struct {
	Title       string           `json:"title,omitempty"`
	Destination string           `json:"destination"`
	Country     string           `json:"country,omitempty"`
	Days        int              `json:"days"`
	StartDate   time.Time        `json:"start_date,omitzero"`
	Travelers   int              `json:"travelers,omitempty"`
	Budget      float64          `json:"budget,omitempty"`
	Profile     trip.Profile     `json:"profile"`
	Preferences trip.Preferences `json:"preferences"`
}

// Job tracks the state of a single plan request.
type Job struct {
	mu sync.Mutex

	ID     string `json:"job_id"`
	TripID string `json:"trip_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Request  PlanRequest `json:"request"`
	Progress Progress    `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	Attempts         int             `json:"attempts"`
	ActivitiesParsed int             `json:"activities_parsed"`
	ParserFallback   bool            `json:"parser_fallback"`
	StaticTemplate   bool            `json:"static_template"`
	Stats            itinerary.Stats `json:"stats"`
	Errors           []string        `json:"errors"`
}

// NewJob returns a queued job for req with fresh job and trip IDs.
func NewJob(req PlanRequest) *Job {
	now := time.Now()
	return &Job{
		ID:        ContentHashHex(fmt.Appendf(nil, "%s-%d-%d", req.Destination, req.Days, now.UnixNano()))[:20],
		TripID:    NewULID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrAttempts counts one generation call.
func (j *Job) IncrAttempts() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Attempts++
	j.UpdatedAt = time.Now()
}

// MarkStaticTemplate records that generation failed and the canned
// itinerary was used instead.
func (j *Job) MarkStaticTemplate() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.StaticTemplate = true
	j.UpdatedAt = time.Now()
}

// SetParsed records the outcome of the itinerary parse.
func (j *Job) SetParsed(res itinerary.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ActivitiesParsed = len(res.Activities)
	j.Progress.ParserFallback = res.Degraded
	j.Progress.Stats = res.Stats
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string      `json:"job_id"`
	TripID    string      `json:"trip_id"`
	Status    JobStatus   `json:"status"`
	Phase     string      `json:"phase"`
	Request   PlanRequest `json:"request"`
	Progress  Progress    `json:"progress"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Done reports whether the job has reached a terminal status.
func (s JobSnapshot) Done() bool {
	switch s.Status {
	case StatusCompleted, StatusDegraded, StatusFailed:
		return true
	}
	return false
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	progress := j.Progress
	progress.Errors = append([]string{}, j.errors...)
	return JobSnapshot{
		ID:        j.ID,
		TripID:    j.TripID,
		Status:    j.Status,
		Phase:     j.Phase,
		Request:   j.Request,
		Progress:  progress,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
