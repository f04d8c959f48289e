// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"github.com/google/uuid"

	jobqueue "github.com/okian/wrapbrain/internal/adapters/mq/queue"
	workerpool "github.com/okian/wrapbrain/internal/adapters/mq/worker"
	repository "github.com/okian/wrapbrain/internal/adapters/repository"
	"github.com/okian/wrapbrain/internal/adapters/renderer"
	"github.com/okian/wrapbrain/internal/domain/creative"
	"github.com/okian/wrapbrain/internal/domain/dedupe"
	"github.com/okian/wrapbrain/internal/domain/intel"
	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/internal/domain/pipeline"
	"github.com/okian/wrapbrain/internal/domain/render"
	"github.com/okian/wrapbrain/internal/domain/voice"
	"github.com/okian/wrapbrain/pkg/logger"
	"github.com/okian/wrapbrain/pkg/metrics"
)

// Service implements the API dependencies for the content pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine    *intel.Engine
	assembler *creative.Assembler
	pipeline  *pipeline.Pipeline
	jobs      repository.Store
	deduper   dedupe.Deduper
	jobQueue  jobqueue.Queue
	pool      *workerpool.Pool

	// Collaborators
	analyzer  intel.Analyzer
	submitter workerpool.Submitter

	// Configuration
	workerCount    int
	queueSize      int
	dedupeSize     int
	maxJobsLimit   int
	slotSeconds    float64
	targetDuration float64
	brandVoice     voice.Profile
	randomSeed     int64

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU() * 2,
		queueSize:    1000,
		dedupeSize:   10000,
		maxJobsLimit: 100,
		stopCh:       make(chan struct{}),
		logger:       nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting content pipeline service...")

	if s.analyzer == nil {
		return ErrNoAnalyzer
	}
	if s.submitter == nil {
		s.submitter = renderer.NewStub()
		s.logger.Warn(ctx, "no renderer configured, using stub client")
	}

	var engineOpts []intel.Option
	if s.slotSeconds > 0 {
		engineOpts = append(engineOpts, intel.WithSlotSeconds(s.slotSeconds))
	}
	s.engine = intel.NewEngine(s.analyzer, engineOpts...)

	var assemblerOpts []creative.Option
	if s.randomSeed != 0 {
		assemblerOpts = append(assemblerOpts, creative.WithRand(rand.New(rand.NewSource(s.randomSeed)))) //nolint:gosec // template picks need no crypto randomness
	}
	s.assembler = creative.NewAssembler(assemblerOpts...)

	s.pipeline = pipeline.New(s.engine, s.assembler)
	s.jobs = repository.NewMemStore(repository.WithListLimit(s.maxJobsLimit))
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s.submitter, s.jobs)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "content pipeline service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping content pipeline service...")

	if s.pool != nil {
		s.pool.Stop()
	}

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "content pipeline service stopped")
}

// Analyze runs the video intelligence stage for a playback URL.
func (s *Service) Analyze(ctx context.Context, opts intel.AnalyzeOptions) (model.VideoAnalysis, error) {
	return s.engine.Analyze(ctx, opts)
}

// Assemble runs the creative stage over an existing analysis. The brand
// voice configured on the service is the base layer; the caller's voice
// overrides field by field.
func (s *Service) Assemble(ctx context.Context, opts creative.AssembleOptions) model.CreativeAssembly {
	opts.Voice = voice.Resolve(s.brandVoice, opts.Voice)
	s.logger.Debug(ctx, "assembling creative plan",
		logger.String("platform", string(opts.Platform)),
		logger.String("mode", string(opts.Mode)),
	)
	return s.assembler.Assemble(opts)
}

// Variants produces count creative takes over an existing analysis.
func (s *Service) Variants(ctx context.Context, opts creative.AssembleOptions, count int) []model.CreativeAssembly {
	opts.Voice = voice.Resolve(s.brandVoice, opts.Voice)
	s.logger.Debug(ctx, "assembling creative variants", logger.Int("count", count))
	return s.assembler.Variants(opts, count)
}

// RunPipeline executes analyze, assemble, and translate in one shot.
func (s *Service) RunPipeline(ctx context.Context, opts pipeline.RunOptions) (pipeline.Result, error) {
	opts.Voice = voice.Resolve(s.brandVoice, opts.Voice)
	if opts.TargetDuration == 0 {
		opts.TargetDuration = s.targetDuration
	}
	return s.pipeline.Run(ctx, opts)
}

// SubmitOptions parameterize an idempotent render submission.
type SubmitOptions struct {
	// RequestID keys idempotency. Empty IDs get a generated UUID and are
	// never treated as duplicates.
	RequestID string

	Run pipeline.RunOptions
}

// SubmitRenderJobs runs the pipeline, fans the plan out per platform,
// tracks each job, and enqueues them for dispatch. Duplicate is true when
// the request ID was already seen; no new jobs are created in that case.
func (s *Service) SubmitRenderJobs(ctx context.Context, opts SubmitOptions) (created []render.Job, duplicate bool, err error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, false, ErrNotStarted
	}

	requestID := opts.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	} else if s.deduper.SeenAndRecord(ctx, requestID) {
		metrics.RecordDuplicateSubmission()
		s.logger.Debug(ctx, "duplicate render submission, skipping",
			logger.String("requestID", requestID),
		)
		return nil, true, nil
	}

	if len(opts.Run.Platforms) == 0 {
		opts.Run.Platforms = []model.Platform{model.PlatformInstagram}
	}

	result, err := s.RunPipeline(ctx, opts.Run)
	if err != nil {
		s.deduper.Unrecord(ctx, requestID)
		return nil, false, err
	}

	jobs := result.Jobs
	for i := range jobs {
		jobs[i].ID = uuid.NewString()
		if putErr := s.jobs.Put(ctx, jobs[i]); putErr != nil {
			s.deduper.Unrecord(ctx, requestID)
			return nil, false, putErr
		}
	}

	for i := range jobs {
		if !s.jobQueue.Enqueue(ctx, jobs[i]) {
			// Backpressure: forget the request ID so the client can retry
			// the whole submission.
			s.deduper.Unrecord(ctx, requestID)
			s.logger.Warn(ctx, "render queue full, rejecting submission",
				logger.String("requestID", requestID),
				logger.Int("enqueued", i),
			)
			return nil, false, ErrQueueFull
		}
	}

	s.logger.Info(ctx, "render jobs submitted",
		logger.String("requestID", requestID),
		logger.Int("jobs", len(jobs)),
	)
	return jobs, false, nil
}

// GetJob returns the tracked render job with the given ID.
func (s *Service) GetJob(ctx context.Context, id string) (render.Job, error) {
	return s.jobs.Get(ctx, id)
}

// ListJobs returns up to limit tracked jobs, newest first. A zero limit
// uses the configured default.
func (s *Service) ListJobs(ctx context.Context, limit int) ([]render.Job, error) {
	if limit > s.maxJobsLimit {
		limit = s.maxJobsLimit
	}
	return s.jobs.List(ctx, limit)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		trackedJobs := s.jobs.Count(ctx)

		stats["queueLength"] = queueLen
		stats["trackedJobs"] = trackedJobs
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTrackedJobs(trackedJobs)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
