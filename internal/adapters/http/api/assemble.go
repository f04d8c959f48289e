// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/wrapbrain/internal/domain/creative"
	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/internal/domain/voice"
)

// maxVariantCount bounds how many creative takes one request may ask for.
const maxVariantCount = 5

// AssembleDependencies defines the interface for creative operations.
type AssembleDependencies interface {
	Assemble(ctx context.Context, opts creative.AssembleOptions) model.CreativeAssembly
	Variants(ctx context.Context, opts creative.AssembleOptions, count int) []model.CreativeAssembly
}

// AssembleHandler handles creative assembly requests.
type AssembleHandler struct {
	deps AssembleDependencies
}

// NewAssembleHandler creates a new assemble handler.
func NewAssembleHandler(deps AssembleDependencies) *AssembleHandler {
	return &AssembleHandler{deps: deps}
}

// assembleRequest mirrors the OpenAPI schema for POST /v1/assemble.
type assembleRequest struct {
	Analysis       model.VideoAnalysis `json:"analysis"`
	Mode           string              `json:"mode,omitempty"`
	Platform       string              `json:"platform,omitempty"`
	Voice          voicePayload        `json:"voice,omitempty"`
	TargetDuration float64             `json:"target_duration,omitempty"`
	VariantCount   int                 `json:"variant_count,omitempty"`
}

func (a assembleRequest) validate() error {
	if a.TargetDuration < 0 {
		return errors.New("target_duration must not be negative")
	}
	if a.VariantCount < 0 || a.VariantCount > maxVariantCount {
		return errors.New("variant_count out of range")
	}
	return nil
}

// assembleResponse wraps one primary assembly plus optional variants.
type assembleResponse struct {
	Creative model.CreativeAssembly   `json:"creative"`
	Variants []model.CreativeAssembly `json:"variants,omitempty"`
}

// HandlePostAssemble handles POST /v1/assemble requests.
func (h *AssembleHandler) HandlePostAssemble(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_assemble"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req assembleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	opts := creative.AssembleOptions{
		Analysis: req.Analysis,
		Mode:     creative.Mode(req.Mode),
		Platform: model.Platform(req.Platform),
		Voice: voice.Profile{
			Tone:       req.Voice.Tone,
			Vocabulary: req.Voice.Vocabulary,
			CTAStyle:   req.Voice.CTAStyle,
			BrandName:  req.Voice.BrandName,
		},
		TargetDuration: req.TargetDuration,
	}

	resp := assembleResponse{Creative: h.deps.Assemble(r.Context(), opts)}
	if req.VariantCount > 1 {
		resp.Variants = h.deps.Variants(r.Context(), opts, req.VariantCount)
	}
	writeJSON(w, http.StatusOK, resp)
}
