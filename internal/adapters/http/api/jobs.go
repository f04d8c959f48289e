// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/wrapbrain/internal/app"
	"github.com/okian/wrapbrain/internal/domain/render"
)

// JobsDependencies defines the interface for render job operations.
type JobsDependencies interface {
	SubmitRenderJobs(ctx context.Context, opts service.SubmitOptions) ([]render.Job, bool, error)
	GetJob(ctx context.Context, id string) (render.Job, error)
	ListJobs(ctx context.Context, limit int) ([]render.Job, error)
}

// JobsHandler handles render job requests.
type JobsHandler struct {
	deps JobsDependencies
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps JobsDependencies) *JobsHandler {
	return &JobsHandler{deps: deps}
}

// submitJobsRequest mirrors the OpenAPI schema for POST /v1/render/jobs.
type submitJobsRequest struct {
	RequestID string `json:"request_id,omitempty"`
	pipelineRequest
}

type submitJobsResponse struct {
	Status    string       `json:"status"`
	Duplicate bool         `json:"duplicate"`
	Jobs      []render.Job `json:"jobs,omitempty"`
}

type listJobsResponse struct {
	Jobs []render.Job `json:"jobs"`
}

// HandleJobs handles POST and GET /v1/render/jobs requests.
func (h *JobsHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *JobsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_render_jobs"
	var req submitJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	jobs, duplicate, err := h.deps.SubmitRenderJobs(r.Context(), service.SubmitOptions{
		RequestID: req.RequestID,
		Run:       req.runOptions(),
	})
	switch {
	case errors.Is(err, service.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	case duplicate:
		writeJSON(w, http.StatusOK, submitJobsResponse{Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, submitJobsResponse{Status: "accepted", Jobs: jobs})
}

func (h *JobsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_render_jobs"
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	jobs, err := h.deps.ListJobs(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if jobs == nil {
		jobs = []render.Job{}
	}
	writeJSON(w, http.StatusOK, listJobsResponse{Jobs: jobs})
}

// HandleGetJob handles GET /v1/render/jobs/{id} requests.
func (h *JobsHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /v1/render/jobs/
	id := strings.TrimPrefix(r.URL.Path, "/v1/render/jobs/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	job, err := h.deps.GetJob(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
