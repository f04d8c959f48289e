package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/wrapbrain/internal/domain/render"
	"github.com/okian/wrapbrain/pkg/metrics"
)

// defaultListLimit bounds listings when no explicit limit is given.
const defaultListLimit = 100

// MemStore is a mutex-guarded in-memory Store implementation.
//
// Listings are ordered by creation time DESC, then ID ASC so repeated
// calls over the same state return the same order.
type MemStore struct {
	mu        sync.RWMutex
	jobs      map[string]render.Job
	listLimit int
}

// NewMemStore creates an empty in-memory job store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		jobs:      make(map[string]render.Job),
		listLimit: defaultListLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put records a job under its ID, overwriting any previous state.
func (s *MemStore) Put(_ context.Context, job render.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	job.UpdatedAt = time.Now()
	s.jobs[job.ID] = job

	metrics.UpdateTrackedJobs(len(s.jobs))
	return nil
}

// Get returns the job with the given ID.
func (s *MemStore) Get(_ context.Context, id string) (render.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return render.Job{}, ErrNotFound
	}
	return job, nil
}

// SetStatus transitions the job to the given status.
func (s *MemStore) SetStatus(_ context.Context, id string, status render.JobStatus, outputURL, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}

	job.Status = status
	if outputURL != "" {
		job.OutputURL = outputURL
	}
	if errMsg != "" {
		job.Error = errMsg
	}
	job.UpdatedAt = time.Now()
	s.jobs[id] = job

	metrics.RecordRenderJob(string(status))
	return nil
}

// List returns up to limit jobs ordered most-recently-created first.
func (s *MemStore) List(_ context.Context, limit int) ([]render.Job, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = s.listLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]render.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of jobs tracked in the store.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
