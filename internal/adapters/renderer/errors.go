package renderer

import "errors"

// Sentinel kinds for renderer client errors.
var (
	ErrMissingAPIKey = errors.New("renderer api key is not configured")
	ErrSubmitFailed  = errors.New("render submission failed")
	ErrBadResponse   = errors.New("unexpected renderer response")
)
