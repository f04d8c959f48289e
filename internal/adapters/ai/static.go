package ai

import (
	"context"

	"github.com/okian/wrapbrain/internal/domain/intel"
)

// Static is an offline intel.Analyzer returning a fixed payload. Useful
// for tests and local development without an API key.
type Static struct {
	// Payload is returned by every Analyze call.
	Payload intel.RawAnalysis
	// Err, when set, is returned instead.
	Err error
}

// NewStatic creates a static analyzer with a representative wrap-video
// cut list.
func NewStatic() *Static {
	f := func(v float64) *float64 { return &v }
	return &Static{
		Payload: intel.RawAnalysis{
			Cuts: []intel.RawCut{
				{Start: f(0), End: f(3), Score: f(0.9), Description: "hook shot of the car", Speech: "check this out"},
				{Start: f(3), End: f(8), Score: f(0.6), Description: "applying vinyl on the hood"},
				{Start: f(8), End: f(12), Score: f(0.95), Description: "final reveal of the wrap"},
			},
			Summary:         "Matte black wrap install on a Tesla Model 3 with a strong reveal.",
			Recommendations: []string{"Lead with the reveal", "Add captions for the install steps"},
			Transitions:     true,
			TextOverlays:    true,
		},
	}
}

// Analyze returns the configured payload.
func (s *Static) Analyze(_ context.Context, _ intel.Request) (intel.RawAnalysis, error) {
	if s.Err != nil {
		return intel.RawAnalysis{}, s.Err
	}
	return s.Payload, nil
}
