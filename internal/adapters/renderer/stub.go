package renderer

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/okian/wrapbrain/internal/domain/render"
)

// Stub is a no-network Client for tests and offline development. Every
// submission succeeds with a synthetic remote ID.
type Stub struct {
	seq atomic.Int64

	// Err, when set, is returned by every Submit call.
	Err error
}

// NewStub creates a stub renderer client.
func NewStub() *Stub {
	return &Stub{}
}

// Submit returns a synthetic successful submission.
func (s *Stub) Submit(_ context.Context, job render.Job) (Submission, error) {
	if s.Err != nil {
		return Submission{}, s.Err
	}
	n := s.seq.Add(1)
	return Submission{
		RemoteID:  fmt.Sprintf("stub-render-%d", n),
		Status:    "planned",
		OutputURL: fmt.Sprintf("https://cdn.example.com/renders/%s-%d.mp4", job.ID, n),
	}, nil
}
