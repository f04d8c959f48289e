// Package renderer provides the client for submitting render jobs to the
// remote rendering service.
package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/wrapbrain/internal/domain/render"
	"github.com/okian/wrapbrain/pkg/logger"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://api.creatomate.com"
	rendersPath    = "/v1/renders"

	defaultTimeout = 60 * time.Second

	// maxErrorBodyBytes bounds how much of a failed response body is read
	// for the error message.
	maxErrorBodyBytes = 4096
)

// Submission is the outcome of a render submission.
type Submission struct {
	// RemoteID is the ID the rendering service assigned to the render.
	RemoteID string
	// Status is the service-reported status at submission time.
	Status string
	// OutputURL is the final asset URL, when the service returns one.
	OutputURL string
}

// Client submits render timelines to the rendering service.
type Client interface {
	// Submit sends the job's timeline for rendering and returns the
	// service's view of the created render.
	Submit(ctx context.Context, job render.Job) (Submission, error)
}

// HTTPClient is the Creatomate-backed Client implementation.
type HTTPClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewHTTPClient creates a renderer client with configuration options.
func NewHTTPClient(apiKey string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logger.Get().Named("renderer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// renderRequest is the wire shape the rendering service accepts.
type renderRequest struct {
	TemplateID    string         `json:"template_id,omitempty"`
	Modifications map[string]any `json:"modifications,omitempty"`
	OutputFormat  string         `json:"output_format,omitempty"`
	Width         int            `json:"width,omitempty"`
	Height        int            `json:"height,omitempty"`
	FrameRate     int            `json:"frame_rate,omitempty"`
}

// renderResponse is one render entry in the service's response array.
type renderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	URL    string `json:"url"`
}

// Submit sends the job's timeline for rendering.
func (c *HTTPClient) Submit(ctx context.Context, job render.Job) (Submission, error) {
	if c.apiKey == "" {
		return Submission{}, ErrMissingAPIKey
	}

	payload := renderRequest{
		TemplateID:    job.Timeline.TemplateID,
		Modifications: job.Timeline.Modifications,
		OutputFormat:  string(job.Timeline.OutputFormat),
		Width:         job.Timeline.Width,
		Height:        job.Timeline.Height,
		FrameRate:     job.Timeline.FrameRate,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+rendersPath, bytes.NewReader(body))
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.log.Warn(ctx, "render submission rejected",
			logger.String("job_id", job.ID),
			logger.Int("status_code", resp.StatusCode),
		)
		return Submission{}, fmt.Errorf("%w: status %d: %s", ErrSubmitFailed, resp.StatusCode, string(msg))
	}

	// The service responds with an array of created renders; one timeline
	// yields one entry.
	var renders []renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&renders); err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	if len(renders) == 0 {
		return Submission{}, ErrBadResponse
	}

	first := renders[0]
	c.log.Debug(ctx, "render submitted",
		logger.String("job_id", job.ID),
		logger.String("remote_id", first.ID),
		logger.String("remote_status", first.Status),
	)
	return Submission{RemoteID: first.ID, Status: first.Status, OutputURL: first.URL}, nil
}
