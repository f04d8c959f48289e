package repository

import "errors"

// Sentinel kinds for job store errors.
var (
	ErrNotFound     = errors.New("render job not found")
	ErrInvalidLimit = errors.New("invalid listing limit")
)
