// Package pipeline wires the three content stages for one-shot use:
// analyze, assemble, translate. It owns no logic beyond sequencing and
// option defaulting.
package pipeline

import (
	"context"

	"github.com/okian/wrapbrain/internal/domain/creative"
	"github.com/okian/wrapbrain/internal/domain/intel"
	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/internal/domain/render"
	"github.com/okian/wrapbrain/internal/domain/voice"
)

// RunOptions parameterize one end-to-end pipeline run.
type RunOptions struct {
	PlaybackURL     string
	Transcript      string
	DurationSeconds float64

	Mode           creative.Mode
	Platform       model.Platform
	Voice          voice.Profile
	TargetDuration float64

	TemplateID          string
	BrandPrimaryColor   string
	BrandSecondaryColor string
	MusicURL            string
	LogoURL             string

	// Platforms triggers a per-platform fan-out when set; the primary
	// Timeline is always produced for Platform.
	Platforms []model.Platform
}

// Result bundles the output of every stage.
type Result struct {
	Analysis model.VideoAnalysis   `json:"analysis"`
	Creative model.CreativeAssembly `json:"creative"`
	Timeline render.Timeline       `json:"timeline"`
	Jobs     []render.Job          `json:"jobs,omitempty"`
}

// Pipeline composes the three stages.
type Pipeline struct {
	engine    *intel.Engine
	assembler *creative.Assembler
}

// New creates a pipeline over the given stage implementations.
func New(engine *intel.Engine, assembler *creative.Assembler) *Pipeline {
	return &Pipeline{engine: engine, assembler: assembler}
}

// Run executes analyze, assemble, and translate in order. The only error
// path is the analyze precondition; every other failure degrades inside
// its stage.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (Result, error) {
	if opts.Mode == "" {
		opts.Mode = creative.ModeAutoCreate
	}
	if opts.Platform == "" {
		opts.Platform = model.PlatformInstagram
	}

	analysis, err := p.engine.Analyze(ctx, intel.AnalyzeOptions{
		PlaybackURL:     opts.PlaybackURL,
		Transcript:      opts.Transcript,
		DurationSeconds: opts.DurationSeconds,
	})
	if err != nil {
		return Result{}, err
	}

	assembly := p.assembler.Assemble(creative.AssembleOptions{
		Analysis:       analysis,
		Mode:           opts.Mode,
		Platform:       opts.Platform,
		Voice:          opts.Voice,
		TargetDuration: opts.TargetDuration,
	})

	translate := render.TranslateOptions{
		Creative:            assembly,
		VideoURL:            opts.PlaybackURL,
		TemplateID:          opts.TemplateID,
		BrandPrimaryColor:   opts.BrandPrimaryColor,
		BrandSecondaryColor: opts.BrandSecondaryColor,
		MusicURL:            opts.MusicURL,
		LogoURL:             opts.LogoURL,
	}

	result := Result{
		Analysis: analysis,
		Creative: assembly,
		Timeline: render.Translate(translate),
	}
	if len(opts.Platforms) > 0 {
		result.Jobs = render.MultiPlatformJobs(render.JobsOptions{
			TranslateOptions: translate,
			Platforms:        opts.Platforms,
		})
	}
	return result, nil
}
