package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service is not started")
	ErrNoAnalyzer = errors.New("no analysis collaborator configured")
	ErrQueueFull  = errors.New("render queue is full")
)
