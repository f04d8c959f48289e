// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// OpenAI-compatible endpoint used by the video analysis collaborator.
	OpenAIAPIKey  string `koanf:"openai_api_key"`
	OpenAIBaseURL string `koanf:"openai_base_url"`
	OpenAIModel   string `koanf:"openai_model"`

	// Creatomate render service credentials.
	CreatomateAPIKey  string `koanf:"creatomate_api_key"`
	CreatomateBaseURL string `koanf:"creatomate_base_url"`

	// RenderQueueSize bounds the in-memory render job queue.
	RenderQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of render dispatch workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxJobsLimit caps GET /v1/render/jobs?limit.
	MaxJobsLimit int `koanf:"max_jobs_limit"`

	// SceneSlotSeconds is the synthetic slot length for cuts without timing.
	SceneSlotSeconds float64 `koanf:"scene_slot_seconds"`

	// DefaultTargetDuration is the fallback output length in seconds.
	DefaultTargetDuration float64 `koanf:"default_target_duration"`

	// Shop-level voice defaults, lowest layer of voice resolution.
	BrandName     string `koanf:"brand_name"`
	BrandTone     string `koanf:"brand_tone"`
	BrandCTAStyle string `koanf:"brand_cta_style"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9090",
		OpenAIBaseURL:         "https://api.openai.com/v1",
		OpenAIModel:           "gpt-4o-mini",
		CreatomateBaseURL:     "https://api.creatomate.com",
		RenderQueueSize:       1_000,
		WorkerCount:           runtime.NumCPU() * 2,
		DedupeSize:            10_000,
		MaxJobsLimit:          100,
		SceneSlotSeconds:      3,
		DefaultTargetDuration: 15,
	}
}
