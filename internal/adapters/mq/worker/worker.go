// Package worker defines worker contracts for asynchronous render dispatch.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/wrapbrain/internal/adapters/renderer"
	"github.com/okian/wrapbrain/internal/domain/render"
	"github.com/okian/wrapbrain/pkg/logger"
	"github.com/okian/wrapbrain/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = render.Job

// Tracker records job status transitions as dispatch progresses.
type Tracker interface {
	SetStatus(ctx context.Context, id string, status render.JobStatus, outputURL, errMsg string) error
}

// Submitter sends a job's timeline to the rendering service.
type Submitter interface {
	Submit(ctx context.Context, job render.Job) (renderer.Submission, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker dispatches render jobs and records outcomes using the provided
// interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for dispatching render jobs.
type InMemoryWorker struct {
	queue     Queue
	submitter Submitter
	tracker   Tracker
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, submitter Submitter, tracker Tracker, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		submitter: submitter,
		tracker:   tracker,
		name:      "worker", // default name
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"), // will be updated by options
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing render job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob handles a single render job.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	if err := w.tracker.SetStatus(ctx, job.ID, render.StatusRendering, "", ""); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "tracker_error")
		return fmt.Errorf("failed to mark job %s rendering: %w", job.ID, err)
	}

	submitStart := time.Now()
	sub, err := w.submitter.Submit(ctx, job)
	metrics.RecordRenderSubmitLatency(float64(time.Since(submitStart).Milliseconds()))

	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "submit_error")
		metrics.RecordErrorByType("submit_error", "high")
		w.logger.Error(ctx, "render submission failed",
			logger.String("jobID", job.ID),
			logger.Error(err),
		)
		if trackErr := w.tracker.SetStatus(ctx, job.ID, render.StatusFailed, "", err.Error()); trackErr != nil {
			w.logger.Error(ctx, "failed to record job failure",
				logger.String("jobID", job.ID),
				logger.Error(trackErr),
			)
		}
		return fmt.Errorf("failed to submit job %s: %w", job.ID, err)
	}

	// The rendering service works asynchronously; a submission that already
	// carries an output URL is treated as complete.
	status := render.StatusRendering
	if sub.OutputURL != "" {
		status = render.StatusComplete
	}
	if err := w.tracker.SetStatus(ctx, job.ID, status, sub.OutputURL, ""); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "tracker_error")
		return fmt.Errorf("failed to record job %s outcome: %w", job.ID, err)
	}

	w.logger.Debug(ctx, "render job dispatched",
		logger.String("jobID", job.ID),
		logger.String("remoteID", sub.RemoteID),
		logger.String("status", string(status)),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	submitter Submitter
	tracker   Tracker

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, submitter Submitter, tracker Tracker) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:   make([]*InMemoryWorker, workerCount),
		queue:     queue,
		submitter: submitter,
		tracker:   tracker,
		shutdown:  make(chan struct{}),
		logger:    logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			submitter,
			tracker,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new jobs
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
