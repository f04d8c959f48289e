// Package creative converts a structured video analysis plus brand-voice
// and platform parameters into a concrete creative plan.
package creative

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/internal/domain/voice"
	"github.com/okian/wrapbrain/pkg/metrics"
)

// Default assembly configuration constants.
const (
	defaultTargetDuration = 15.0
	defaultRandomSeed     = 42
	maxHashtags           = 15
	maxSequenceScenes     = 6
	hookOverlayEnd        = 2.5
	ctaOverlaySpan        = 3.0
	vehicleOverlaySpan    = 2.0
	hookSceneSpeed        = 1.2
	storyMaxDuration      = 10.0
	variantDurationStep   = 2.0
	rationaleSeparator    = " | "
)

// Stable overlay identifiers assigned at creation. Render translation
// keys renderer fields off these, never off slice position.
const (
	OverlayIDHook    = "hook"
	OverlayIDCTA     = "cta"
	OverlayIDVehicle = "vehicle-callout"
)

// Mode selects how much creative latitude the assembler takes.
type Mode string

// Assembly modes.
const (
	ModeAutoCreate Mode = "auto_create"
	ModeAutonomous Mode = "autonomous"
	ModeAssisted   Mode = "assisted"
)

// AssembleOptions parameterize one assembly. Analysis may be empty; the
// assembler is total over any valid analysis.
type AssembleOptions struct {
	Analysis       model.VideoAnalysis
	Mode           Mode
	Platform       model.Platform
	Voice          voice.Profile
	TargetDuration float64
}

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithRand sets the random source used for template picks, letting tests
// pin output.
func WithRand(rng *rand.Rand) Option {
	return func(a *Assembler) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// Assembler produces creative plans. Template picks draw from an
// injectable seeded random source; everything else is deterministic.
type Assembler struct {
	rng *rand.Rand
}

// NewAssembler creates an assembler with configuration options.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		rng: rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // template picks only, not security sensitive
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds a complete creative plan. It is synchronous, never
// fails, and degrades gracefully over a zero-scene analysis.
func (a *Assembler) Assemble(opts AssembleOptions) model.CreativeAssembly {
	if opts.TargetDuration <= 0 {
		opts.TargetDuration = defaultTargetDuration
	}

	analysis := opts.Analysis
	sequence := buildSequence(analysis.Scenes, opts.TargetDuration)

	assembly := model.CreativeAssembly{
		Format:          formatFor(opts.Platform, opts.TargetDuration),
		Hook:            a.pickHook(analysis, opts.Voice),
		Caption:         a.pickCaption(analysis, opts.Voice),
		CTA:             a.pickCTA(opts.Voice),
		Hashtags:        buildHashtags(analysis),
		Sequence:        sequence,
		Overlays:        buildOverlays(analysis, sequence),
		TemplateStyle:   templateStyle(opts.Mode, analysis.EnergyLevel),
		MusicSuggestion: musicSuggestions[normalizeEnergy(analysis.EnergyLevel)],
		MusicEnergy:     normalizeEnergy(analysis.EnergyLevel),
		DurationTarget:  opts.TargetDuration,
	}
	assembly.Overlays[0].Text = assembly.Hook
	if cta := findOverlay(assembly.Overlays, OverlayIDCTA); cta != nil {
		cta.Text = assembly.CTA
	}
	assembly.CreativeRationale = rationale(opts.Mode, analysis)

	metrics.RecordAssemblyCompleted()
	return assembly
}

// Variants produces count assemblies with a fixed, index-keyed variation
// policy: duration perturbed per index, variant 1 hook uppercased,
// variant 2 restyled minimal-clean.
func (a *Assembler) Variants(opts AssembleOptions, count int) []model.CreativeAssembly {
	if opts.TargetDuration <= 0 {
		opts.TargetDuration = defaultTargetDuration
	}
	variants := make([]model.CreativeAssembly, 0, count)
	for i := 0; i < count; i++ {
		vopts := opts
		vopts.TargetDuration = opts.TargetDuration + float64(i-1)*variantDurationStep
		v := a.Assemble(vopts)
		switch i {
		case 1:
			v.Hook = strings.ToUpper(v.Hook)
		case 2:
			v.TemplateStyle = styleMinimalClean
		}
		variants = append(variants, v)
	}
	return variants
}

func (a *Assembler) pickHook(analysis model.VideoAnalysis, vp voice.Profile) string {
	vehicle := orDefault(analysis.DetectedVehicle, fallbackVehicle)
	color := orDefault(analysis.WrapColor, fallbackColor)

	switch {
	case analysis.HasShotType(string(model.LabelBefore)) || analysis.HasShotType(string(model.LabelAfter)):
		return substitute(beforeAfterHook, vehicle, color, "")
	case analysis.HasShotType(string(model.LabelRevealShot)):
		return revealHook
	}
	if hook, ok := toneHooks[vp.Tone]; ok {
		return substitute(hook, vehicle, color, "")
	}
	return substitute(hookTemplates[a.rng.Intn(len(hookTemplates))], vehicle, color, "")
}

func (a *Assembler) pickCaption(analysis model.VideoAnalysis, vp voice.Profile) string {
	vehicle := orDefault(analysis.DetectedVehicle, fallbackVehicle)
	color := orDefault(analysis.WrapColor, fallbackColor)
	brand := orDefault(vp.BrandName, fallbackBrand)
	return substitute(captionTemplates[a.rng.Intn(len(captionTemplates))], vehicle, color, brand)
}

func (a *Assembler) pickCTA(vp voice.Profile) string {
	if cta, ok := styleCTAs[vp.CTAStyle]; ok {
		return cta
	}
	return ctaTemplates[a.rng.Intn(len(ctaTemplates))]
}

// buildHashtags starts with the base tags, appends vehicle/color/reveal
// tags, and truncates to the cap preserving insertion order.
func buildHashtags(analysis model.VideoAnalysis) []string {
	tags := make([]string, 0, maxHashtags)
	tags = append(tags, baseHashtags...)
	if analysis.DetectedVehicle != "" {
		tags = append(tags, "#"+sanitizeTag(analysis.DetectedVehicle))
	}
	if analysis.WrapColor != "" {
		tags = append(tags, "#"+sanitizeTag(analysis.WrapColor)+"wrap")
	}
	if analysis.HasShotType(string(model.LabelRevealShot)) {
		tags = append(tags, revealHashtags...)
	}
	if len(tags) > maxHashtags {
		tags = tags[:maxHashtags]
	}
	return tags
}

// buildSequence takes up to the top scenes by descending score, keeping
// each scene's own timing. A zero-scene analysis yields a single segment
// spanning the whole target duration.
func buildSequence(scenes []model.AnalyzedScene, targetDuration float64) []model.CreativeSequence {
	if len(scenes) == 0 {
		return []model.CreativeSequence{{
			Start:      0,
			End:        targetDuration,
			Transition: model.TransitionNone,
			Speed:      1.0,
		}}
	}

	ranked := make([]model.AnalyzedScene, len(scenes))
	copy(ranked, scenes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > maxSequenceScenes {
		ranked = ranked[:maxSequenceScenes]
	}

	sequence := make([]model.CreativeSequence, 0, len(ranked))
	for i, scene := range ranked {
		entry := model.CreativeSequence{
			Start:      scene.Start,
			End:        scene.End,
			Label:      scene.Label,
			Transition: model.TransitionCut,
			Speed:      1.0,
		}
		if i == 0 {
			entry.Transition = model.TransitionNone
		}
		if scene.Label == model.LabelHookAction {
			entry.Speed = hookSceneSpeed
		}
		sequence = append(sequence, entry)
	}
	return sequence
}

// buildOverlays emits the hook overlay, a CTA overlay anchored to the end
// of the last sequence entry, and a vehicle callout when enough material
// exists. Overlay text is filled in by the caller once hook/CTA copy is
// chosen.
func buildOverlays(analysis model.VideoAnalysis, sequence []model.CreativeSequence) []model.CreativeOverlay {
	overlays := []model.CreativeOverlay{{
		ID:        OverlayIDHook,
		Start:     0,
		End:       hookOverlayEnd,
		Style:     model.StyleBold,
		Position:  model.PositionCenter,
		Animation: model.AnimationPop,
	}}

	if len(sequence) > 0 {
		var end float64
		for _, seq := range sequence {
			if seq.End > end {
				end = seq.End
			}
		}
		// Start may go negative for very short cuts; render translation
		// clamps before emitting.
		overlays = append(overlays, model.CreativeOverlay{
			ID:        OverlayIDCTA,
			Start:     end - ctaOverlaySpan,
			End:       end,
			Style:     model.StyleCTA,
			Position:  model.PositionBottom,
			Animation: model.AnimationSlide,
		})
	}

	if analysis.DetectedVehicle != "" && len(sequence) > 2 {
		mid := sequence[len(sequence)/2]
		text := analysis.DetectedVehicle
		if analysis.WrapColor != "" {
			text = analysis.DetectedVehicle + " • " + analysis.WrapColor
		}
		overlays = append(overlays, model.CreativeOverlay{
			ID:        OverlayIDVehicle,
			Text:      text,
			Start:     mid.Start,
			End:       mid.Start + vehicleOverlaySpan,
			Style:     model.StyleMinimal,
			Position:  model.PositionBottom,
			Animation: model.AnimationFade,
		})
	}
	return overlays
}

func templateStyle(mode Mode, energy model.EnergyLevel) string {
	if mode == ModeAutonomous {
		return styleCinematicPremium
	}
	switch energy {
	case model.EnergyHigh:
		return styleDynamicFastCut
	case model.EnergyLow:
		return styleElegantSlow
	default:
		return styleBalancedStandard
	}
}

// formatFor resolves the content format. Instagram and TikTok always get
// reels; other platforms resolve purely by duration, so youtube_shorts
// and facebook land on reel or story by the same rule.
func formatFor(platform model.Platform, duration float64) model.ContentFormat {
	if platform == model.PlatformInstagram || platform == model.PlatformTikTok {
		return model.FormatReel
	}
	if duration < storyMaxDuration {
		return model.FormatStory
	}
	return model.FormatReel
}

func rationale(mode Mode, analysis model.VideoAnalysis) string {
	parts := []string{
		fmt.Sprintf("mode: %s", mode),
		fmt.Sprintf("energy: %s", normalizeEnergy(analysis.EnergyLevel)),
		fmt.Sprintf("%d scenes selected", len(analysis.Scenes)),
	}
	if analysis.BestHookScene != nil {
		parts = append(parts, fmt.Sprintf("hook from %.1fs (score %.2f)", analysis.BestHookScene.Start, analysis.BestHookScene.Score))
	}
	if analysis.ContentRating > 0 {
		parts = append(parts, fmt.Sprintf("content rating %d/100", analysis.ContentRating))
	}
	return strings.Join(parts, rationaleSeparator)
}

func normalizeEnergy(e model.EnergyLevel) model.EnergyLevel {
	if e == "" {
		return model.EnergyMedium
	}
	return e
}

func substitute(template, vehicle, color, brand string) string {
	out := strings.ReplaceAll(template, "{vehicle}", vehicle)
	out = strings.ReplaceAll(out, "{color}", color)
	out = strings.ReplaceAll(out, "{brand}", brand)
	return out
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func sanitizeTag(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func findOverlay(overlays []model.CreativeOverlay, id string) *model.CreativeOverlay {
	for i := range overlays {
		if overlays[i].ID == id {
			return &overlays[i]
		}
	}
	return nil
}
