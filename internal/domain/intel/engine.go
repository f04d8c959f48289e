// Package intel normalizes a noisy, partially-AI-provided video analysis
// into a structured scene model with scores, labels, and inferred
// vehicle/color/style facts.
package intel

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/pkg/logger"
	"github.com/okian/wrapbrain/pkg/metrics"
)

// Default engine configuration constants.
const (
	// defaultSlotSeconds is the synthetic slot length assigned to cuts the
	// collaborator returns without timing. Overridable via WithSlotSeconds.
	defaultSlotSeconds = 3.0
	// defaultSceneScore is assumed when a cut carries no score.
	defaultSceneScore = 0.7
	// hookWindowSeconds bounds how late a scene may start and still be a
	// hook candidate.
	hookWindowSeconds = 5.0
	// neutralContentRating is reported for a zero-scene analysis.
	neutralContentRating = 50
	maxContentRating     = 100
	highEnergyMaxAvg     = 2.0
	mediumEnergyMaxAvg   = 4.0
)

// RawCut is one cut record returned by the analysis collaborator. Every
// field is optional; missing timing and score are defaulted during
// normalization.
type RawCut struct {
	Start       *float64 `json:"start,omitempty"`
	End         *float64 `json:"end,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Description string   `json:"description,omitempty"`
	Speech      string   `json:"speech,omitempty"`
}

// RawAnalysis is the best-effort payload from the analysis collaborator.
// Any shape deviation must be tolerated.
type RawAnalysis struct {
	Cuts            []RawCut `json:"cuts,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	ColorGrading    bool     `json:"color_grading,omitempty"`
	Transitions     bool     `json:"transitions,omitempty"`
	TextOverlays    bool     `json:"text_overlays,omitempty"`
	SpeedRamps      bool     `json:"speed_ramps,omitempty"`
}

// Request carries the media reference handed to the collaborator.
type Request struct {
	PlaybackURL     string
	Transcript      string
	DurationSeconds float64
}

// Analyzer is the external analysis collaborator consumed by the engine.
type Analyzer interface {
	// Analyze inspects a playable media reference and returns raw cut
	// recommendations plus optional hints.
	Analyze(ctx context.Context, req Request) (RawAnalysis, error)
}

// AnalyzeOptions parameterize a single Analyze call. PlaybackURL is
// mandatory.
type AnalyzeOptions struct {
	PlaybackURL     string
	Transcript      string
	DurationSeconds float64
}

// Engine turns collaborator output into a model.VideoAnalysis.
type Engine struct {
	analyzer    Analyzer
	slotSeconds float64
	logger      logger.Logger
}

// NewEngine creates an engine backed by the given collaborator.
func NewEngine(analyzer Analyzer, opts ...Option) *Engine {
	e := &Engine{
		analyzer:    analyzer,
		slotSeconds: defaultSlotSeconds,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("intel")
	}
	return e
}

// Analyze runs the collaborator and normalizes its response. A missing
// playback URL is the only hard error; collaborator failures are absorbed
// into a minimal valid analysis with an advisory suggestion. There are no
// retries.
func (e *Engine) Analyze(ctx context.Context, opts AnalyzeOptions) (model.VideoAnalysis, error) {
	if opts.PlaybackURL == "" {
		return model.VideoAnalysis{}, ErrMissingPlaybackURL
	}

	raw, err := e.analyzer.Analyze(ctx, Request{
		PlaybackURL:     opts.PlaybackURL,
		Transcript:      opts.Transcript,
		DurationSeconds: opts.DurationSeconds,
	})
	if err != nil {
		e.logger.Warn(ctx, "analysis collaborator failed; returning degraded analysis",
			logger.String("playbackURL", opts.PlaybackURL),
			logger.Error(err),
		)
		metrics.RecordAnalysisDegraded()
		return degradedAnalysis(err), nil
	}

	analysis := e.normalize(raw, opts)
	metrics.RecordAnalysisCompleted()
	return analysis, nil
}

// degradedAnalysis is the single recovery path for upstream failures: a
// minimal valid analysis noting the failure.
func degradedAnalysis(cause error) model.VideoAnalysis {
	return model.VideoAnalysis{
		Scenes:        []model.AnalyzedScene{},
		Keywords:      []string{},
		ShotTypes:     []string{},
		Suggestions:   []string{fmt.Sprintf("automatic analysis unavailable (%v); review the clip manually", cause)},
		EnergyLevel:   model.EnergyMedium,
		ContentRating: neutralContentRating,
	}
}

func (e *Engine) normalize(raw RawAnalysis, opts AnalyzeOptions) model.VideoAnalysis {
	scenes := e.buildScenes(raw.Cuts)

	analysis := model.VideoAnalysis{
		Scenes:        scenes,
		Transcript:    opts.Transcript,
		Keywords:      hintKeywords(raw),
		ShotTypes:     shotTypes(scenes),
		Suggestions:   raw.Recommendations,
		BestHookScene: bestHookScene(scenes),
		EnergyLevel:   energyLevel(scenes),
		ContentRating: contentRating(scenes),
	}

	analysis.DetectedVehicle = extractVehicle(opts.Transcript)
	analysis.WrapColor, analysis.WrapFinish = extractWrapColor(opts.Transcript)

	analysis.DurationSeconds = opts.DurationSeconds
	if analysis.DurationSeconds == 0 && len(scenes) > 0 {
		analysis.DurationSeconds = scenes[len(scenes)-1].End
	}

	analysis.Summary = raw.Summary
	if analysis.Summary == "" {
		analysis.Summary = describeScenes(analysis)
	}

	return analysis
}

// buildScenes synthesizes one AnalyzedScene per cut. Cuts without timing
// fall into consecutive fixed-length slots; cuts without a score take the
// default.
func (e *Engine) buildScenes(cuts []RawCut) []model.AnalyzedScene {
	scenes := make([]model.AnalyzedScene, 0, len(cuts))
	for i, cut := range cuts {
		scene := model.AnalyzedScene{
			Start:  float64(i) * e.slotSeconds,
			End:    float64(i+1) * e.slotSeconds,
			Score:  defaultSceneScore,
			Speech: cut.Speech,
		}
		if cut.Start != nil {
			scene.Start = *cut.Start
		}
		if cut.End != nil {
			scene.End = *cut.End
		}
		if cut.Score != nil {
			scene.Score = *cut.Score
		}
		scene.Label = classifyLabel(cut.Description)
		scene.Action = classifyAction(cut.Description)
		scenes = append(scenes, scene)
	}
	return scenes
}

// bestHookScene picks the highest-scoring scene starting inside the hook
// window. Ties keep the earliest candidate; with no candidates the first
// scene wins; with no scenes the result is nil.
func bestHookScene(scenes []model.AnalyzedScene) *model.AnalyzedScene {
	var best *model.AnalyzedScene
	for i := range scenes {
		if scenes[i].Start >= hookWindowSeconds {
			continue
		}
		if best == nil || scenes[i].Score > best.Score {
			best = &scenes[i]
		}
	}
	if best == nil && len(scenes) > 0 {
		best = &scenes[0]
	}
	return best
}

// shotTypes is the de-duplicated union of scene labels and actions, in
// first-seen order.
func shotTypes(scenes []model.AnalyzedScene) []string {
	seen := make(map[string]bool)
	types := make([]string, 0, len(scenes))
	add := func(t string) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		types = append(types, t)
	}
	for _, s := range scenes {
		add(string(s.Label))
		add(string(s.Action))
	}
	return types
}

func hintKeywords(raw RawAnalysis) []string {
	keywords := make([]string, 0, 4)
	if raw.ColorGrading {
		keywords = append(keywords, "color_grading")
	}
	if raw.Transitions {
		keywords = append(keywords, "transitions")
	}
	if raw.TextOverlays {
		keywords = append(keywords, "overlays")
	}
	if raw.SpeedRamps {
		keywords = append(keywords, "dynamic_pacing")
	}
	return keywords
}

// energyLevel classifies pacing by average scene duration. A zero-scene
// analysis reads as medium.
func energyLevel(scenes []model.AnalyzedScene) model.EnergyLevel {
	if len(scenes) == 0 {
		return model.EnergyMedium
	}
	var total float64
	for _, s := range scenes {
		total += s.Duration()
	}
	avg := total / float64(len(scenes))
	switch {
	case avg < highEnergyMaxAvg:
		return model.EnergyHigh
	case avg < mediumEnergyMaxAvg:
		return model.EnergyMedium
	default:
		return model.EnergyLow
	}
}

// contentRating scores editability 0-100 from average scene score plus
// bonuses for having hook and reveal material. A zero-scene analysis
// reads as neutral.
func contentRating(scenes []model.AnalyzedScene) int {
	if len(scenes) == 0 {
		return neutralContentRating
	}
	var total float64
	hasHook, hasReveal := false, false
	for _, s := range scenes {
		total += s.Score
		if s.Label == model.LabelHookAction {
			hasHook = true
		}
		if s.Label == model.LabelRevealShot {
			hasReveal = true
		}
	}
	rating := total / float64(len(scenes)) * 60
	if hasHook {
		rating += 20
	}
	if hasReveal {
		rating += 20
	}
	return int(math.Round(math.Min(maxContentRating, rating)))
}

// describeScenes generates a summary when the collaborator supplied none.
func describeScenes(a model.VideoAnalysis) string {
	hasReveal := a.HasShotType(string(model.LabelRevealShot))
	hasBeforeAfter := a.HasShotType(string(model.LabelBefore)) || a.HasShotType(string(model.LabelAfter))
	switch {
	case hasReveal && hasBeforeAfter:
		return "Transformation video with before/after and reveal shots"
	case hasReveal:
		return "Wrap reveal video with strong finish"
	case hasBeforeAfter:
		return "Before and after comparison video"
	default:
		return fmt.Sprintf("%d scene video ready for editing", len(a.Scenes))
	}
}
