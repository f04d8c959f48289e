// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/wrapbrain/internal/domain/intel"
	"github.com/okian/wrapbrain/internal/domain/model"
)

// AnalyzeDependencies defines the interface for analysis operations.
type AnalyzeDependencies interface {
	Analyze(ctx context.Context, opts intel.AnalyzeOptions) (model.VideoAnalysis, error)
}

// AnalyzeHandler handles video analysis requests.
type AnalyzeHandler struct {
	deps AnalyzeDependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps AnalyzeDependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// analyzeRequest mirrors the OpenAPI schema for POST /v1/analyze.
type analyzeRequest struct {
	PlaybackURL     string  `json:"playback_url"`
	Transcript      string  `json:"transcript,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

func (a analyzeRequest) validate() error {
	if strings.TrimSpace(a.PlaybackURL) == "" {
		return errors.New("missing playback_url")
	}
	if a.DurationSeconds < 0 {
		return errors.New("duration_seconds must not be negative")
	}
	return nil
}

// HandlePostAnalyze handles POST /v1/analyze requests.
func (h *AnalyzeHandler) HandlePostAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	analysis, err := h.deps.Analyze(r.Context(), intel.AnalyzeOptions{
		PlaybackURL:     req.PlaybackURL,
		Transcript:      req.Transcript,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
