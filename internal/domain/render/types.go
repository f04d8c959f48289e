// Package render deterministically lowers a creative plan into
// renderer-ready timeline documents and validates them before hand-off.
package render

import (
	"time"

	"github.com/okian/wrapbrain/internal/domain/model"
)

// OutputFormat is the renderer output container.
type OutputFormat string

// Supported output formats.
const (
	OutputMP4 OutputFormat = "mp4"
	OutputGIF OutputFormat = "gif"
	OutputPNG OutputFormat = "png"
)

// Timeline is the flat renderer document: a template reference plus a
// mapping of dotted renderer field paths to scalar values. The pipeline's
// obligation ends at emitting a validation-clean Timeline.
type Timeline struct {
	TemplateID    string         `json:"template_id,omitempty"`
	Modifications map[string]any `json:"modifications"`
	OutputFormat  OutputFormat   `json:"output_format"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	FrameRate     int            `json:"frame_rate"`
}

// JobStatus tracks a render job through its lifecycle. The pipeline only
// ever emits StatusPending; later transitions are owned by the renderer
// and the surrounding service.
type JobStatus string

// Job statuses.
const (
	StatusPending   JobStatus = "pending"
	StatusRendering JobStatus = "rendering"
	StatusComplete  JobStatus = "complete"
	StatusFailed    JobStatus = "failed"
)

// Job is one platform-specific render request derived from a creative
// plan.
type Job struct {
	ID        string         `json:"id,omitempty"`
	Platform  model.Platform `json:"platform"`
	Timeline  Timeline       `json:"timeline"`
	Status    JobStatus      `json:"status"`
	OutputURL string         `json:"output_url,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
}

// ValidationResult accumulates contract violations found in a Timeline.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
