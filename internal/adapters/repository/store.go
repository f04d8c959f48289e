// Package repository defines the render job store interface and errors.
package repository

import (
	"context"

	"github.com/okian/wrapbrain/internal/domain/render"
)

// Store provides read/write access to tracked render jobs.
type Store interface {
	// Put records a job under its ID, overwriting any previous state.
	Put(ctx context.Context, job render.Job) error

	// Get returns the job with the given ID.
	// Returns ErrNotFound if the job is unknown.
	Get(ctx context.Context, id string) (render.Job, error)

	// SetStatus transitions the job to the given status. OutputURL and
	// errMsg may be empty depending on the status.
	// Returns ErrNotFound if the job is unknown.
	SetStatus(ctx context.Context, id string, status render.JobStatus, outputURL, errMsg string) error

	// List returns up to limit jobs ordered most-recently-created first.
	List(ctx context.Context, limit int) ([]render.Job, error)

	// Count returns the number of jobs tracked in the store.
	Count(ctx context.Context) int
}
