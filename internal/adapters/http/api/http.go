// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/wrapbrain/internal/adapters/repository"
	"github.com/okian/wrapbrain/internal/domain/creative"
	"github.com/okian/wrapbrain/internal/domain/intel"
	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/internal/domain/pipeline"
	"github.com/okian/wrapbrain/internal/domain/render"
	service "github.com/okian/wrapbrain/internal/app"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Analyze(ctx context.Context, opts intel.AnalyzeOptions) (model.VideoAnalysis, error)
	Assemble(ctx context.Context, opts creative.AssembleOptions) model.CreativeAssembly
	Variants(ctx context.Context, opts creative.AssembleOptions, count int) []model.CreativeAssembly
	RunPipeline(ctx context.Context, opts pipeline.RunOptions) (pipeline.Result, error)
	SubmitRenderJobs(ctx context.Context, opts service.SubmitOptions) ([]render.Job, bool, error)
	GetJob(ctx context.Context, id string) (render.Job, error)
	ListJobs(ctx context.Context, limit int) ([]render.Job, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	analyzeHandler  *AnalyzeHandler
	assembleHandler *AssembleHandler
	pipelineHandler *PipelineHandler
	jobsHandler     *JobsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		analyzeHandler:  NewAnalyzeHandler(deps),
		assembleHandler: NewAssembleHandler(deps),
		pipelineHandler: NewPipelineHandler(deps),
		jobsHandler:     NewJobsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/analyze", MetricsMiddleware(s.analyzeHandler.HandlePostAnalyze, "analyze"))
	mux.HandleFunc("/v1/assemble", MetricsMiddleware(s.assembleHandler.HandlePostAssemble, "assemble"))
	mux.HandleFunc("/v1/pipeline", MetricsMiddleware(s.pipelineHandler.HandlePostPipeline, "pipeline"))
	mux.HandleFunc("/v1/render/jobs", MetricsMiddleware(s.jobsHandler.HandleJobs, "render_jobs"))
	mux.HandleFunc("/v1/render/jobs/", MetricsMiddleware(s.jobsHandler.HandleGetJob, "render_job"))
}

// voicePayload mirrors the brand voice shape accepted by write endpoints.
type voicePayload struct {
	Tone       string   `json:"tone,omitempty"`
	Vocabulary []string `json:"vocabulary,omitempty"`
	CTAStyle   string   `json:"cta_style,omitempty"`
	BrandName  string   `json:"brand_name,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
