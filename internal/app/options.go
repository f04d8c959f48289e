package service

import (
	workerpool "github.com/okian/wrapbrain/internal/adapters/mq/worker"
	"github.com/okian/wrapbrain/internal/domain/intel"
	"github.com/okian/wrapbrain/internal/domain/voice"
	"github.com/okian/wrapbrain/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAnalyzer sets the analysis collaborator. Required before Start.
func WithAnalyzer(a intel.Analyzer) Option {
	return func(s *Service) {
		s.analyzer = a
	}
}

// WithRenderer sets the render submission client. A stub is used when
// unset.
func WithRenderer(sub workerpool.Submitter) Option {
	return func(s *Service) {
		s.submitter = sub
	}
}

// WithWorkerCount sets the number of dispatch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the render job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the request deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxJobsLimit caps how many jobs a single listing may return.
func WithMaxJobsLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxJobsLimit = limit
		}
	}
}

// WithSlotSeconds sets the synthetic scene slot length used when the
// analysis collaborator returns no cuts.
func WithSlotSeconds(seconds float64) Option {
	return func(s *Service) {
		if seconds > 0 {
			s.slotSeconds = seconds
		}
	}
}

// WithTargetDuration sets the default creative target duration.
func WithTargetDuration(seconds float64) Option {
	return func(s *Service) {
		if seconds > 0 {
			s.targetDuration = seconds
		}
	}
}

// WithBrandVoice sets the base brand voice layered under per-request
// voices.
func WithBrandVoice(v voice.Profile) Option {
	return func(s *Service) {
		s.brandVoice = v
	}
}

// WithRandomSeed seeds the creative template picks deterministically.
func WithRandomSeed(seed int64) Option {
	return func(s *Service) {
		s.randomSeed = seed
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
