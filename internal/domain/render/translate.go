package render

import (
	"fmt"
	"math"

	"github.com/okian/wrapbrain/internal/domain/creative"
	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/pkg/metrics"
)

// Default render document constants.
const (
	// defaultTemplateID is the baseline renderer template used when the
	// caller supplies none.
	defaultTemplateID = "wrap-reel-baseline"

	defaultWidth     = 1080
	defaultHeight    = 1920
	defaultFrameRate = 30

	hookTextDuration = 2.5
	ctaTextDuration  = 3.0
	// defaultEndTime anchors the CTA when the plan has no sequence.
	defaultEndTime = 15.0

	minDimension = 100
	maxDimension = 4096
)

// Renderer field paths for the fixed template slots.
const (
	fieldVideoSource = "Video.source"
	fieldVideoFit    = "Video.fit"
	fieldMusicSource = "Music.source"
	fieldLogoSource  = "Logo.source"
	fieldHookText    = "Text-1"
	fieldCTAText     = "Text-2"
)

// TranslateOptions parameterize one lowering of a creative plan.
type TranslateOptions struct {
	Creative   model.CreativeAssembly
	VideoURL   string
	TemplateID string

	BrandPrimaryColor   string
	BrandSecondaryColor string
	MusicURL            string
	LogoURL             string
}

// Translate lowers a creative plan into a flat renderer document. It is
// pure, synchronous, and total.
func Translate(opts TranslateOptions) Timeline {
	mods := map[string]any{
		fieldVideoSource: opts.VideoURL,
	}

	if opts.Creative.Hook != "" {
		mods[fieldHookText+".text"] = opts.Creative.Hook
		mods[fieldHookText+".time"] = 0.0
		mods[fieldHookText+".duration"] = hookTextDuration
	}

	if opts.Creative.CTA != "" {
		endTime := opts.Creative.SequenceEnd()
		if len(opts.Creative.Sequence) == 0 {
			endTime = defaultEndTime
		}
		mods[fieldCTAText+".text"] = opts.Creative.CTA
		mods[fieldCTAText+".time"] = math.Max(0, endTime-ctaTextDuration)
		mods[fieldCTAText+".duration"] = ctaTextDuration
	}

	if opts.BrandPrimaryColor != "" {
		mods[fieldHookText+".fill_color"] = opts.BrandPrimaryColor
	}
	if opts.BrandSecondaryColor != "" {
		mods[fieldCTAText+".fill_color"] = opts.BrandSecondaryColor
	}
	if opts.MusicURL != "" {
		mods[fieldMusicSource] = opts.MusicURL
	}
	if opts.LogoURL != "" {
		mods[fieldLogoSource] = opts.LogoURL
	}

	// Overlays beyond the fixed hook/CTA slots map to fields keyed by the
	// overlay's creation-time ID, so list order never renames a field.
	for _, ov := range opts.Creative.Overlays {
		if ov.ID == creative.OverlayIDHook || ov.ID == creative.OverlayIDCTA {
			continue
		}
		prefix := fmt.Sprintf("Overlay-%s", ov.ID)
		mods[prefix+".text"] = ov.Text
		mods[prefix+".time"] = ov.Start
		mods[prefix+".duration"] = ov.End - ov.Start
	}

	templateID := opts.TemplateID
	if templateID == "" {
		templateID = defaultTemplateID
	}

	metrics.RecordTranslation()
	return Timeline{
		TemplateID:    templateID,
		Modifications: mods,
		OutputFormat:  OutputMP4,
		Width:         defaultWidth,
		Height:        defaultHeight,
		FrameRate:     defaultFrameRate,
	}
}

// ValidateTimeline checks the outbound render contract, accumulating
// every violation rather than short-circuiting.
func ValidateTimeline(t Timeline) ValidationResult {
	errs := []string{}

	if src, ok := t.Modifications[fieldVideoSource]; !ok || src == "" {
		errs = append(errs, "no video source provided")
	}
	if t.TemplateID == "" && len(t.Modifications) == 0 {
		errs = append(errs, "no template or modifications provided")
	}
	if t.Width != 0 && (t.Width < minDimension || t.Width > maxDimension) {
		errs = append(errs, fmt.Sprintf("width %d outside valid range [%d, %d]", t.Width, minDimension, maxDimension))
	}
	if t.Height != 0 && (t.Height < minDimension || t.Height > maxDimension) {
		errs = append(errs, fmt.Sprintf("height %d outside valid range [%d, %d]", t.Height, minDimension, maxDimension))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
