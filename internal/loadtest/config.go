// Package loadtest exercises a running service end to end: it submits
// generated render requests, waits for dispatch, and verifies job state.
package loadtest

import "time"

// Config holds the load test parameters.
type Config struct {
	// BaseURL of the running service.
	BaseURL string

	// NumRequests is how many render submissions to generate.
	NumRequests int

	// DuplicateRate is the fraction of submissions reusing an earlier
	// request ID, exercising the idempotency path. Range [0,1).
	DuplicateRate float64

	// Workers is the number of concurrent submitters.
	Workers int

	// Timeout applies per HTTP request.
	Timeout time.Duration

	// WaitFor bounds how long verification polls for job completion.
	WaitFor time.Duration

	// Verbose enables per-request logging.
	Verbose bool
}

// Stats collects outcomes across the test phases.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	RequestsGenerated int
	RequestsSubmitted int
	RequestsAccepted  int
	RequestsDuplicate int
	RequestsThrottled int
	RequestsFailed    int

	JobsCreated  int
	JobsComplete int
	JobsFailed   int
	JobsPending  int
}
