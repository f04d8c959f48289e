package ai

import "errors"

// Sentinel kinds for analysis collaborator errors.
var (
	ErrAnalysisCall  = errors.New("analysis call failed")
	ErrEmptyResponse = errors.New("analysis returned no choices")
	ErrBadPayload    = errors.New("analysis payload is not decodable")
)
