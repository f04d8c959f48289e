package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/wrapbrain/internal/adapters/ai"
	"github.com/okian/wrapbrain/internal/adapters/http/api"
	"github.com/okian/wrapbrain/internal/adapters/http/swagger"
	"github.com/okian/wrapbrain/internal/adapters/mq/worker"
	"github.com/okian/wrapbrain/internal/adapters/renderer"
	app "github.com/okian/wrapbrain/internal/app"
	"github.com/okian/wrapbrain/internal/config"
	"github.com/okian/wrapbrain/internal/domain/intel"
	"github.com/okian/wrapbrain/internal/domain/voice"
	"github.com/okian/wrapbrain/pkg/logger"
	"github.com/okian/wrapbrain/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Analysis collaborator: real client when a key is configured,
	// offline static analyzer otherwise.
	analyzer := buildAnalyzer(ctx, cfg, loggerInstance)

	// Renderer client: stub without a key.
	submitter := buildRenderer(ctx, cfg, loggerInstance)

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithAnalyzer(analyzer),
		app.WithRenderer(submitter),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.RenderQueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithMaxJobsLimit(cfg.MaxJobsLimit),
		app.WithSlotSeconds(cfg.SceneSlotSeconds),
		app.WithTargetDuration(cfg.DefaultTargetDuration),
		app.WithBrandVoice(voice.Profile{
			Tone:      cfg.BrandTone,
			CTAStyle:  cfg.BrandCTAStyle,
			BrandName: cfg.BrandName,
		}),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildAnalyzer picks the analysis collaborator from configuration.
func buildAnalyzer(ctx context.Context, cfg *config.Config, log logger.Logger) intel.Analyzer {
	if cfg.OpenAIAPIKey == "" {
		log.Warn(ctx, "no openai_api_key configured, using static analyzer")
		return ai.NewStatic()
	}
	return ai.NewClient(cfg.OpenAIAPIKey,
		ai.WithBaseURL(cfg.OpenAIBaseURL),
		ai.WithModel(cfg.OpenAIModel),
	)
}

// buildRenderer picks the render submission client from configuration.
func buildRenderer(ctx context.Context, cfg *config.Config, log logger.Logger) worker.Submitter {
	if cfg.CreatomateAPIKey == "" {
		log.Warn(ctx, "no creatomate_api_key configured, using stub renderer")
		return renderer.NewStub()
	}
	return renderer.NewHTTPClient(cfg.CreatomateAPIKey,
		renderer.WithBaseURL(cfg.CreatomateBaseURL),
	)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval) // Update every 10 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval) // Update every 5 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// Update GC pause time
	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()

	// GetStats already refreshes gauges; repeat the integer ones here so a
	// stalled stats endpoint cannot leave them frozen.
	if queueLen, ok := stats["queueLength"].(int); ok {
		metrics.UpdateQueueSize(queueLen)
	}

	if trackedJobs, ok := stats["trackedJobs"].(int); ok {
		metrics.UpdateTrackedJobs(trackedJobs)
	}

	if workerCount, ok := stats["workerCount"].(int); ok {
		metrics.UpdateWorkerCount(workerCount)
	}
}
