package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/wrapbrain/internal/loadtest"
	"github.com/okian/wrapbrain/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumRequests   = 500
	defaultDuplicateRate = 0.1
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultWaitFor       = 2 * time.Minute
	defaultTestTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:9090", "Base URL of the service")
		numRequests   = flag.Int("requests", defaultNumRequests, "Number of render submissions to generate")
		duplicateRate = flag.Float64("dup-rate", defaultDuplicateRate, "Fraction of submissions reusing an earlier request ID")
		workers       = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		waitFor       = flag.Duration("wait", defaultWaitFor, "How long to wait for job completion")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &loadtest.Config{
		BaseURL:       *baseURL,
		NumRequests:   *numRequests,
		DuplicateRate: *duplicateRate,
		Workers:       *workers,
		Timeout:       *timeout,
		WaitFor:       *waitFor,
		Verbose:       *verbose,
	}

	if err := loadtest.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Load test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
