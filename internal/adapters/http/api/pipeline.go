// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/wrapbrain/internal/domain/creative"
	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/internal/domain/pipeline"
	"github.com/okian/wrapbrain/internal/domain/voice"
)

// PipelineDependencies defines the interface for one-shot pipeline runs.
type PipelineDependencies interface {
	RunPipeline(ctx context.Context, opts pipeline.RunOptions) (pipeline.Result, error)
}

// PipelineHandler handles end-to-end pipeline requests.
type PipelineHandler struct {
	deps PipelineDependencies
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(deps PipelineDependencies) *PipelineHandler {
	return &PipelineHandler{deps: deps}
}

// pipelineRequest mirrors the OpenAPI schema for POST /v1/pipeline.
type pipelineRequest struct {
	PlaybackURL     string  `json:"playback_url"`
	Transcript      string  `json:"transcript,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`

	Mode           string       `json:"mode,omitempty"`
	Platform       string       `json:"platform,omitempty"`
	Platforms      []string     `json:"platforms,omitempty"`
	Voice          voicePayload `json:"voice,omitempty"`
	TargetDuration float64      `json:"target_duration,omitempty"`

	TemplateID          string `json:"template_id,omitempty"`
	BrandPrimaryColor   string `json:"brand_primary_color,omitempty"`
	BrandSecondaryColor string `json:"brand_secondary_color,omitempty"`
	MusicURL            string `json:"music_url,omitempty"`
	LogoURL             string `json:"logo_url,omitempty"`
}

func (p pipelineRequest) validate() error {
	if strings.TrimSpace(p.PlaybackURL) == "" {
		return errors.New("missing playback_url")
	}
	if p.DurationSeconds < 0 {
		return errors.New("duration_seconds must not be negative")
	}
	if p.TargetDuration < 0 {
		return errors.New("target_duration must not be negative")
	}
	return nil
}

// runOptions lowers the request into pipeline options.
func (p pipelineRequest) runOptions() pipeline.RunOptions {
	platforms := make([]model.Platform, 0, len(p.Platforms))
	for _, pl := range p.Platforms {
		platforms = append(platforms, model.Platform(pl))
	}
	return pipeline.RunOptions{
		PlaybackURL:     p.PlaybackURL,
		Transcript:      p.Transcript,
		DurationSeconds: p.DurationSeconds,
		Mode:            creative.Mode(p.Mode),
		Platform:        model.Platform(p.Platform),
		Platforms:       platforms,
		Voice: voice.Profile{
			Tone:       p.Voice.Tone,
			Vocabulary: p.Voice.Vocabulary,
			CTAStyle:   p.Voice.CTAStyle,
			BrandName:  p.Voice.BrandName,
		},
		TargetDuration:      p.TargetDuration,
		TemplateID:          p.TemplateID,
		BrandPrimaryColor:   p.BrandPrimaryColor,
		BrandSecondaryColor: p.BrandSecondaryColor,
		MusicURL:            p.MusicURL,
		LogoURL:             p.LogoURL,
	}
}

// HandlePostPipeline handles POST /v1/pipeline requests.
func (h *PipelineHandler) HandlePostPipeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_pipeline"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req pipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.RunPipeline(r.Context(), req.runOptions())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
