package queue

import "errors"

// Sentinel errors returned by queue implementations.
var (
	// ErrQueueClosed indicates the queue has been closed and no longer
	// accepts jobs.
	ErrQueueClosed = errors.New("queue is closed")

	// ErrQueueFull indicates the queue is at capacity.
	ErrQueueFull = errors.New("queue is full")
)
