// Package model contains the value types passed between pipeline stages.
//
// Every type here is a plain value produced by one stage and owned by the
// caller afterwards. No type holds a reference back to its producing stage.
package model

// SceneLabel classifies a visual segment of the source video.
type SceneLabel string

// Closed label set assigned during video analysis.
const (
	LabelHookAction  SceneLabel = "hook_action"
	LabelRevealShot  SceneLabel = "reveal_shot"
	LabelDetail      SceneLabel = "detail"
	LabelBRoll       SceneLabel = "b-roll"
	LabelTalkingHead SceneLabel = "talking_head"
	LabelBefore      SceneLabel = "before"
	LabelAfter       SceneLabel = "after"
	LabelTransition  SceneLabel = "transition"
)

// SceneAction tags the installer activity visible in a segment.
type SceneAction string

// Recognized installer actions.
const (
	ActionApplyingVinyl SceneAction = "applying_vinyl"
	ActionSqueegee      SceneAction = "squeegee"
	ActionHeatGun       SceneAction = "heat_gun"
	ActionCleaning      SceneAction = "cleaning"
	ActionReveal        SceneAction = "reveal"
	ActionComparison    SceneAction = "comparison"
)

// EnergyLevel is the pacing classification derived from scene durations.
type EnergyLevel string

// Energy levels.
const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// ContentFormat is the output format the creative plan targets.
type ContentFormat string

// Supported content formats.
const (
	FormatReel     ContentFormat = "reel"
	FormatStory    ContentFormat = "story"
	FormatAd       ContentFormat = "ad"
	FormatStatic   ContentFormat = "static"
	FormatCarousel ContentFormat = "carousel"
)

// Platform identifies a publishing destination.
type Platform string

// Supported platforms.
const (
	PlatformInstagram     Platform = "instagram"
	PlatformTikTok        Platform = "tiktok"
	PlatformYouTubeShorts Platform = "youtube_shorts"
	PlatformFacebook      Platform = "facebook"
)

// OverlayStyle selects the visual treatment of an on-screen text overlay.
type OverlayStyle string

// Overlay styles.
const (
	StyleBold    OverlayStyle = "bold"
	StyleMinimal OverlayStyle = "minimal"
	StyleBranded OverlayStyle = "branded"
	StyleCaption OverlayStyle = "caption"
	StyleCTA     OverlayStyle = "cta"
)

// OverlayPosition anchors an overlay vertically on screen.
type OverlayPosition string

// Overlay positions.
const (
	PositionTop    OverlayPosition = "top"
	PositionCenter OverlayPosition = "center"
	PositionBottom OverlayPosition = "bottom"
)

// OverlayAnimation selects the entrance animation of an overlay.
type OverlayAnimation string

// Overlay animations.
const (
	AnimationFade       OverlayAnimation = "fade"
	AnimationSlide      OverlayAnimation = "slide"
	AnimationPop        OverlayAnimation = "pop"
	AnimationTypewriter OverlayAnimation = "typewriter"
)

// Transition selects how one sequence segment hands off to the next.
type Transition string

// Sequence transitions.
const (
	TransitionCut   Transition = "cut"
	TransitionFade  Transition = "fade"
	TransitionZoom  Transition = "zoom"
	TransitionSwipe Transition = "swipe"
	TransitionNone  Transition = "none"
)

// AnalyzedScene is one time-bounded visual segment of the source video.
// Start and End are seconds with Start < End; Score follows the unit
// interval convention [0,1]. Label and Action are empty when unknown.
type AnalyzedScene struct {
	Start  float64     `json:"start"`
	End    float64     `json:"end"`
	Score  float64     `json:"score"`
	Label  SceneLabel  `json:"label,omitempty"`
	Speech string      `json:"speech,omitempty"`
	Action SceneAction `json:"action,omitempty"`
}

// Duration returns the scene length in seconds.
func (s AnalyzedScene) Duration() float64 {
	return s.End - s.Start
}

// VideoAnalysis is the normalized scene model produced by the video
// intelligence engine. A zero-scene analysis is valid; every downstream
// computation degrades gracefully rather than failing.
type VideoAnalysis struct {
	Scenes          []AnalyzedScene `json:"scenes"`
	Transcript      string          `json:"transcript,omitempty"`
	Keywords        []string        `json:"keywords"`
	DetectedVehicle string          `json:"detected_vehicle,omitempty"`
	WrapColor       string          `json:"wrap_color,omitempty"`
	WrapFinish      string          `json:"wrap_finish,omitempty"`
	ShotTypes       []string        `json:"shot_types"`
	Summary         string          `json:"summary,omitempty"`
	Suggestions     []string        `json:"suggestions,omitempty"`
	BestHookScene   *AnalyzedScene  `json:"best_hook_scene,omitempty"`
	DurationSeconds float64         `json:"duration_seconds,omitempty"`
	EnergyLevel     EnergyLevel     `json:"energy_level"`
	ContentRating   int             `json:"content_rating"`
}

// HasShotType reports whether the analysis derived the given shot type
// from any scene label or action.
func (a VideoAnalysis) HasShotType(t string) bool {
	for _, st := range a.ShotTypes {
		if st == t {
			return true
		}
	}
	return false
}

// CreativeOverlay is a timed on-screen text element. ID is assigned at
// creation and is the stable key downstream render translation uses for
// renderer field naming, so reordering the overlay slice never renames
// renderer fields.
type CreativeOverlay struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Start     float64          `json:"start"`
	End       float64          `json:"end"`
	Style     OverlayStyle     `json:"style"`
	Position  OverlayPosition  `json:"position,omitempty"`
	Animation OverlayAnimation `json:"animation,omitempty"`
}

// CreativeSequence is one segment of the output cut. Start and End come
// from the originating scene; Speed is a playback-rate multiplier.
type CreativeSequence struct {
	Start      float64    `json:"start"`
	End        float64    `json:"end"`
	Label      SceneLabel `json:"label,omitempty"`
	Transition Transition `json:"transition,omitempty"`
	Speed      float64    `json:"speed"`
}

// CreativeAssembly is the complete creative plan for one piece of content.
type CreativeAssembly struct {
	Format            ContentFormat      `json:"format"`
	Hook              string             `json:"hook"`
	Caption           string             `json:"caption"`
	CTA               string             `json:"cta"`
	Hashtags          []string           `json:"hashtags"`
	Overlays          []CreativeOverlay  `json:"overlays"`
	Sequence          []CreativeSequence `json:"sequence"`
	TemplateStyle     string             `json:"template_style"`
	MusicSuggestion   string             `json:"music_suggestion"`
	MusicEnergy       EnergyLevel        `json:"music_energy"`
	DurationTarget    float64            `json:"duration_target"`
	CreativeRationale string             `json:"creative_rationale"`
}

// SequenceEnd returns the latest End across the sequence, or 0 when the
// sequence is empty.
func (c CreativeAssembly) SequenceEnd() float64 {
	var end float64
	for _, seq := range c.Sequence {
		if seq.End > end {
			end = seq.End
		}
	}
	return end
}
