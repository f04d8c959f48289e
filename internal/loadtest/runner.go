package loadtest

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/wrapbrain/pkg/logger"
)

// generatorSeed pins the request set so repeated runs hit the same IDs.
const generatorSeed = 1

// pollInterval is how often verification re-reads job state.
const pollInterval = 500 * time.Millisecond

// ackResponse mirrors the submit acknowledgement shape.
type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
	Jobs      []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"jobs"`
}

// jobView mirrors the job read shape.
type jobView struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Run executes the complete render load test.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting render load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.NumRequests),
		logger.Int("workers", cfg.Workers),
		logger.Float64("duplicateRate", cfg.DuplicateRate),
		logger.String("timeout", cfg.Timeout.String()))

	if err := checkServiceHealth(ctx, cfg); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	rng := rand.New(rand.NewSource(generatorSeed)) //nolint:gosec // deterministic test data
	subs := generateSubmissions(cfg, rng)
	stats.RequestsGenerated = len(subs)

	jobIDs, err := submitAll(ctx, cfg, subs, stats)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	stats.JobsCreated = len(jobIDs)

	if err := verifyJobs(ctx, cfg, jobIDs, stats); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "load test completed")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, cfg *Config) error {
	client := newHTTPClient(cfg.Timeout)
	resp, err := client.get(ctx, cfg.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submitAll pushes every submission through a worker pool and collects
// created job IDs.
func submitAll(ctx context.Context, cfg *Config, subs []Submission, stats *Stats) ([]string, error) {
	client := newHTTPClient(cfg.Timeout)
	url := cfg.BaseURL + "/v1/render/jobs"

	var (
		submitted int64
		accepted  int64
		duplicate int64
		throttled int64
		failed    int64

		mu     sync.Mutex
		jobIDs []string
	)

	subChan := make(chan Submission, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range subChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddInt64(&submitted, 1)
				ids, outcome := submitOne(ctx, client, url, sub)
				switch outcome {
				case "accepted":
					atomic.AddInt64(&accepted, 1)
					mu.Lock()
					jobIDs = append(jobIDs, ids...)
					mu.Unlock()
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				case "throttled":
					atomic.AddInt64(&throttled, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}

				if cfg.Verbose {
					logger.Get().Debug(ctx, "submission done",
						logger.String("requestID", sub.RequestID),
						logger.String("outcome", outcome))
				}
			}
		}()
	}

	go func() {
		defer close(subChan)
		for _, sub := range subs {
			select {
			case <-ctx.Done():
				return
			case subChan <- sub:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsAccepted = int(atomic.LoadInt64(&accepted))
	stats.RequestsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.RequestsThrottled = int(atomic.LoadInt64(&throttled))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))

	return jobIDs, nil
}

// submitOne sends a single submission and classifies the outcome.
func submitOne(ctx context.Context, client *httpClient, url string, sub Submission) ([]string, string) {
	resp, err := client.post(ctx, url, sub)
	if err != nil {
		return nil, "failed"
	}

	switch resp.StatusCode {
	case http.StatusAccepted:
		var ack ackResponse
		if err := decodeBody(resp, &ack); err != nil {
			return nil, "failed"
		}
		ids := make([]string, 0, len(ack.Jobs))
		for _, j := range ack.Jobs {
			ids = append(ids, j.ID)
		}
		return ids, "accepted"
	case http.StatusOK:
		_ = resp.Body.Close()
		return nil, "duplicate"
	case http.StatusTooManyRequests:
		_ = resp.Body.Close()
		return nil, "throttled"
	default:
		_ = resp.Body.Close()
		return nil, "failed"
	}
}

// verifyJobs polls job state until every job is terminal or the wait
// budget runs out.
func verifyJobs(ctx context.Context, cfg *Config, jobIDs []string, stats *Stats) error {
	client := newHTTPClient(cfg.Timeout)
	deadline := time.Now().Add(cfg.WaitFor)

	pending := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		pending[id] = struct{}{}
	}

	for len(pending) > 0 && time.Now().Before(deadline) {
		for id := range pending {
			resp, err := client.get(ctx, cfg.BaseURL+"/v1/render/jobs/"+id)
			if err != nil {
				continue
			}
			var job jobView
			if err := decodeBody(resp, &job); err != nil {
				continue
			}
			switch job.Status {
			case "complete":
				stats.JobsComplete++
				delete(pending, id)
			case "failed":
				stats.JobsFailed++
				delete(pending, id)
			}
		}
		if len(pending) > 0 {
			time.Sleep(pollInterval)
		}
	}

	stats.JobsPending = len(pending)
	if stats.JobsPending > 0 {
		logger.Get().Warn(ctx, "jobs still pending after wait budget",
			logger.Int("pending", stats.JobsPending))
	}
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, requestsPerSecond float64

	if stats.RequestsSubmitted > 0 {
		successRate = float64(stats.RequestsAccepted+stats.RequestsDuplicate) / float64(stats.RequestsSubmitted) * 100
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("requestsGenerated", stats.RequestsGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("requestsAccepted", stats.RequestsAccepted),
		logger.Int("requestsDuplicate", stats.RequestsDuplicate),
		logger.Int("requestsThrottled", stats.RequestsThrottled),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("jobsCreated", stats.JobsCreated),
		logger.Int("jobsComplete", stats.JobsComplete),
		logger.Int("jobsFailed", stats.JobsFailed),
		logger.Int("jobsPending", stats.JobsPending),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
