package render

import (
	"sort"

	"github.com/okian/wrapbrain/internal/domain/model"
)

// Advanced timeline constants.
const (
	videoTrack = 1
	textTrack  = 2
	audioTrack = 3

	// fallbackSnapshotTime is used when the plan has no sequence to pick
	// a thumbnail frame from.
	fallbackSnapshotTime = 2.0

	defaultTextPosition  = "85%"
	defaultTextAnimation = "fade"
)

// Element is one entry in the element-list timeline representation.
type Element struct {
	Type       string  `json:"type"`
	Track      int     `json:"track"`
	Time       float64 `json:"time"`
	Duration   float64 `json:"duration,omitempty"`
	Source     string  `json:"source,omitempty"`
	TrimStart  float64 `json:"trim_start,omitempty"`
	Speed      float64 `json:"speed,omitempty"`
	Transition string  `json:"transition,omitempty"`
	Text       string  `json:"text,omitempty"`
	YAlign     string  `json:"y_align,omitempty"`
	Animation  string  `json:"animation,omitempty"`
}

// AdvancedTimeline is the richer element-list alternative to the flat
// modifications document. It is not consumed by Translate or
// MultiPlatformJobs.
type AdvancedTimeline struct {
	OutputFormat OutputFormat `json:"output_format"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	FrameRate    int          `json:"frame_rate"`
	Elements     []Element    `json:"elements"`
}

// AdvancedOptions parameterize BuildAdvancedTimeline.
type AdvancedOptions struct {
	MusicURL string
}

// transitionNames maps sequence transitions to renderer transition names.
// Unknown transitions resolve to "", meaning no visual transition.
var transitionNames = map[model.Transition]string{
	model.TransitionFade:  "fade",
	model.TransitionZoom:  "zoom",
	model.TransitionSwipe: "wipe",
}

// positionValues maps overlay positions to renderer vertical alignment.
var positionValues = map[model.OverlayPosition]string{
	model.PositionTop:    "15%",
	model.PositionCenter: "50%",
	model.PositionBottom: "85%",
}

// animationNames maps overlay animations to renderer animation names.
var animationNames = map[model.OverlayAnimation]string{
	model.AnimationFade:       "fade",
	model.AnimationSlide:      "slide-up",
	model.AnimationPop:        "scale",
	model.AnimationTypewriter: "typewriter",
}

// BuildAdvancedTimeline emits an element-list document: one video clip
// per sequence entry, one text element per overlay, and an optional audio
// bed.
func BuildAdvancedTimeline(c model.CreativeAssembly, videoURL string, opts AdvancedOptions) AdvancedTimeline {
	elements := make([]Element, 0, len(c.Sequence)+len(c.Overlays)+1)

	var cursor float64
	for _, seq := range c.Sequence {
		speed := seq.Speed
		if speed <= 0 {
			speed = 1.0
		}
		duration := (seq.End - seq.Start) / speed
		elements = append(elements, Element{
			Type:       "video",
			Track:      videoTrack,
			Time:       cursor,
			Duration:   duration,
			Source:     videoURL,
			TrimStart:  seq.Start,
			Speed:      speed,
			Transition: transitionNames[seq.Transition],
		})
		cursor += duration
	}

	for _, ov := range c.Overlays {
		yAlign, ok := positionValues[ov.Position]
		if !ok {
			yAlign = defaultTextPosition
		}
		animation, ok := animationNames[ov.Animation]
		if !ok {
			animation = defaultTextAnimation
		}
		elements = append(elements, Element{
			Type:      "text",
			Track:     textTrack,
			Time:      ov.Start,
			Duration:  ov.End - ov.Start,
			Text:      ov.Text,
			YAlign:    yAlign,
			Animation: animation,
		})
	}

	if opts.MusicURL != "" {
		elements = append(elements, Element{
			Type:   "audio",
			Track:  audioTrack,
			Time:   0,
			Source: opts.MusicURL,
		})
	}

	return AdvancedTimeline{
		OutputFormat: OutputMP4,
		Width:        defaultWidth,
		Height:       defaultHeight,
		FrameRate:    defaultFrameRate,
		Elements:     elements,
	}
}

// ThumbnailSpec describes the still frame to capture for a cover image.
type ThumbnailSpec struct {
	SnapshotTime float64      `json:"snapshot_time"`
	OutputFormat OutputFormat `json:"output_format"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
}

// BuildThumbnailSpec prefers the reveal-shot sequence entry; otherwise it
// falls back to the entry with the latest start time. The latest-start
// fallback is long-standing behavior that downstream templates expect, so
// it is kept as-is.
func BuildThumbnailSpec(c model.CreativeAssembly) ThumbnailSpec {
	spec := ThumbnailSpec{
		SnapshotTime: fallbackSnapshotTime,
		OutputFormat: OutputPNG,
		Width:        defaultWidth,
		Height:       defaultHeight,
	}
	if len(c.Sequence) == 0 {
		return spec
	}

	for _, seq := range c.Sequence {
		if seq.Label == model.LabelRevealShot {
			spec.SnapshotTime = seq.Start
			return spec
		}
	}

	ranked := make([]model.CreativeSequence, len(c.Sequence))
	copy(ranked, c.Sequence)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Start > ranked[j].Start
	})
	spec.SnapshotTime = ranked[0].Start
	return spec
}
