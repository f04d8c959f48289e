package creative_test

import (
	"math/rand"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wrapbrain/internal/domain/creative"
	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/internal/domain/voice"
	"github.com/okian/wrapbrain/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func seeded(seed int64) *creative.Assembler {
	return creative.NewAssembler(creative.WithRand(rand.New(rand.NewSource(seed)))) //nolint:gosec
}

func scene(start, end, score float64, label model.SceneLabel) model.AnalyzedScene {
	return model.AnalyzedScene{Start: start, End: end, Score: score, Label: label}
}

func TestAssemble(t *testing.T) {
	Convey("Given a seeded assembler", t, func() {
		assembler := seeded(1)

		Convey("When assembling with no analysis at all", func() {
			assembly := assembler.Assemble(creative.AssembleOptions{Mode: creative.ModeAutoCreate})

			Convey("Then the target duration defaults", func() {
				So(assembly.DurationTarget, ShouldEqual, 15.0)
			})

			Convey("Then a single full-span segment stands in for the sequence", func() {
				So(assembly.Sequence, ShouldHaveLength, 1)
				So(assembly.Sequence[0].Start, ShouldEqual, 0.0)
				So(assembly.Sequence[0].End, ShouldEqual, 15.0)
				So(assembly.Sequence[0].Transition, ShouldEqual, model.TransitionNone)
				So(assembly.Sequence[0].Speed, ShouldEqual, 1.0)
			})

			Convey("Then missing energy reads as medium", func() {
				So(assembly.MusicEnergy, ShouldEqual, model.EnergyMedium)
				So(assembly.MusicSuggestion, ShouldEqual, "upbeat hip-hop or pop")
			})

			Convey("Then hook and caption fall back to generic copy", func() {
				So(assembly.Hook, ShouldNotBeEmpty)
				So(assembly.Caption, ShouldContainSubstring, "our shop")
			})

			Convey("Then the same seed reproduces the same plan", func() {
				again := seeded(1).Assemble(creative.AssembleOptions{Mode: creative.ModeAutoCreate})
				So(again.Hook, ShouldEqual, assembly.Hook)
				So(again.Caption, ShouldEqual, assembly.Caption)
				So(again.CTA, ShouldEqual, assembly.CTA)
			})
		})

		Convey("When the analysis has before/after material", func() {
			assembly := assembler.Assemble(creative.AssembleOptions{
				Analysis: model.VideoAnalysis{
					Scenes:          []model.AnalyzedScene{scene(0, 3, 0.8, model.LabelBefore)},
					ShotTypes:       []string{"before"},
					DetectedVehicle: "tesla",
				},
			})

			Convey("Then the before/after hook is forced", func() {
				So(assembly.Hook, ShouldEqual, "Before vs After: tesla")
			})
		})

		Convey("When the analysis has a reveal but no before/after", func() {
			assembly := assembler.Assemble(creative.AssembleOptions{
				Analysis: model.VideoAnalysis{
					Scenes:    []model.AnalyzedScene{scene(0, 3, 0.8, model.LabelRevealShot)},
					ShotTypes: []string{"reveal_shot"},
				},
			})

			Convey("Then the reveal hook is forced", func() {
				So(assembly.Hook, ShouldEqual, "Wait for the reveal... 👀")
			})

			Convey("Then reveal hashtags follow the base set", func() {
				So(assembly.Hashtags, ShouldResemble, []string{
					"#wrap", "#vinylwrap", "#carwrap", "#transformation", "#reveal", "#satisfying",
				})
			})
		})

		Convey("When the voice profile sets tone and CTA style", func() {
			assembly := assembler.Assemble(creative.AssembleOptions{
				Voice: voice.Profile{Tone: "luxury", CTAStyle: "urgent", BrandName: "Apex Wraps"},
			})

			Convey("Then the tone hook and style CTA are chosen", func() {
				So(assembly.Hook, ShouldEqual, "Elevating the this ride. Every detail, perfected.")
				So(assembly.CTA, ShouldEqual, "Book now — this month's slots are almost gone! 📲")
			})

			Convey("Then the brand name reaches the caption when its template uses it", func() {
				if strings.Contains(assembly.Caption, "Apex Wraps") {
					So(assembly.Caption, ShouldContainSubstring, "Apex Wraps")
				}
				So(assembly.Caption, ShouldNotContainSubstring, "{brand}")
			})
		})

		Convey("When the analysis names a vehicle and color", func() {
			assembly := assembler.Assemble(creative.AssembleOptions{
				Analysis: model.VideoAnalysis{
					DetectedVehicle: "model 3",
					WrapColor:       "black",
				},
			})

			Convey("Then vehicle and color hashtags are sanitized and appended", func() {
				So(assembly.Hashtags, ShouldResemble, []string{
					"#wrap", "#vinylwrap", "#carwrap", "#transformation", "#model3", "#blackwrap",
				})
			})
		})
	})
}

func TestSequenceAndOverlays(t *testing.T) {
	Convey("Given an analysis with many scored scenes", t, func() {
		assembler := seeded(1)
		scenes := []model.AnalyzedScene{
			scene(0, 2, 0.9, model.LabelHookAction),
			scene(2, 4, 0.5, model.LabelBRoll),
			scene(4, 6, 0.8, model.LabelDetail),
			scene(6, 8, 0.5, model.LabelBRoll),
			scene(8, 10, 0.7, model.LabelBRoll),
			scene(10, 12, 0.6, model.LabelBRoll),
			scene(12, 14, 0.3, model.LabelBRoll),
			scene(14, 16, 0.95, model.LabelRevealShot),
		}

		Convey("When assembling", func() {
			assembly := assembler.Assemble(creative.AssembleOptions{
				Analysis: model.VideoAnalysis{
					Scenes:          scenes,
					DetectedVehicle: "tesla",
					WrapColor:       "black",
				},
			})

			Convey("Then the sequence keeps the top scenes by score", func() {
				So(assembly.Sequence, ShouldHaveLength, 6)
				So(assembly.Sequence[0].Start, ShouldEqual, 14.0)
				So(assembly.Sequence[1].Start, ShouldEqual, 0.0)
				So(assembly.Sequence[2].Start, ShouldEqual, 4.0)
			})

			Convey("Then ties keep source order", func() {
				// Only one 0.5 scene makes the cut and it is the earlier one.
				So(assembly.Sequence[4].Start, ShouldEqual, 10.0)
				So(assembly.Sequence[5].Start, ShouldEqual, 2.0)
			})

			Convey("Then transitions and speeds follow the segment roles", func() {
				So(assembly.Sequence[0].Transition, ShouldEqual, model.TransitionNone)
				So(assembly.Sequence[1].Transition, ShouldEqual, model.TransitionCut)
				So(assembly.Sequence[1].Speed, ShouldEqual, 1.2)
				So(assembly.Sequence[2].Speed, ShouldEqual, 1.0)
			})

			Convey("Then the hook overlay opens the edit", func() {
				So(assembly.Overlays[0].ID, ShouldEqual, creative.OverlayIDHook)
				So(assembly.Overlays[0].Start, ShouldEqual, 0.0)
				So(assembly.Overlays[0].End, ShouldEqual, 2.5)
				So(assembly.Overlays[0].Text, ShouldEqual, assembly.Hook)
				So(assembly.Overlays[0].Style, ShouldEqual, model.StyleBold)
			})

			Convey("Then the CTA overlay hugs the latest segment end", func() {
				So(assembly.Overlays[1].ID, ShouldEqual, creative.OverlayIDCTA)
				So(assembly.Overlays[1].Start, ShouldEqual, 13.0)
				So(assembly.Overlays[1].End, ShouldEqual, 16.0)
				So(assembly.Overlays[1].Text, ShouldEqual, assembly.CTA)
				So(assembly.Overlays[1].Position, ShouldEqual, model.PositionBottom)
			})

			Convey("Then a vehicle callout lands mid-sequence", func() {
				So(assembly.Overlays, ShouldHaveLength, 3)
				callout := assembly.Overlays[2]
				So(callout.ID, ShouldEqual, creative.OverlayIDVehicle)
				So(callout.Text, ShouldEqual, "tesla • black")
				So(callout.End-callout.Start, ShouldEqual, 2.0)
				So(callout.Style, ShouldEqual, model.StyleMinimal)
			})
		})

		Convey("When the whole edit is shorter than the CTA span", func() {
			assembly := assembler.Assemble(creative.AssembleOptions{
				Analysis: model.VideoAnalysis{
					Scenes: []model.AnalyzedScene{scene(0, 1, 0.8, model.LabelBRoll)},
				},
			})

			Convey("Then the CTA start is left negative for downstream clamping", func() {
				So(assembly.Overlays[1].Start, ShouldEqual, -2.0)
				So(assembly.Overlays[1].End, ShouldEqual, 1.0)
			})
		})
	})
}

func TestStyleAndFormat(t *testing.T) {
	Convey("Given the style and format rules", t, func() {
		assembler := seeded(1)

		styleFor := func(mode creative.Mode, energy model.EnergyLevel) string {
			return assembler.Assemble(creative.AssembleOptions{
				Mode:     mode,
				Analysis: model.VideoAnalysis{EnergyLevel: energy},
			}).TemplateStyle
		}

		Convey("Then autonomous mode dominates energy", func() {
			So(styleFor(creative.ModeAutonomous, model.EnergyHigh), ShouldEqual, "cinematic-premium")
		})

		Convey("Then energy resolves the style otherwise", func() {
			So(styleFor(creative.ModeAutoCreate, model.EnergyHigh), ShouldEqual, "dynamic-fast-cut")
			So(styleFor(creative.ModeAutoCreate, model.EnergyLow), ShouldEqual, "elegant-slow")
			So(styleFor(creative.ModeAutoCreate, model.EnergyMedium), ShouldEqual, "balanced-standard")
		})

		formatFor := func(platform model.Platform, duration float64) model.ContentFormat {
			return assembler.Assemble(creative.AssembleOptions{
				Platform:       platform,
				TargetDuration: duration,
			}).Format
		}

		Convey("Then instagram and tiktok always produce reels", func() {
			So(formatFor(model.PlatformInstagram, 5), ShouldEqual, model.FormatReel)
			So(formatFor(model.PlatformTikTok, 5), ShouldEqual, model.FormatReel)
		})

		Convey("Then other platforms resolve by duration", func() {
			So(formatFor(model.PlatformFacebook, 8), ShouldEqual, model.FormatStory)
			So(formatFor(model.PlatformFacebook, 15), ShouldEqual, model.FormatReel)
			So(formatFor(model.PlatformYouTubeShorts, 9), ShouldEqual, model.FormatStory)
		})
	})
}

func TestVariants(t *testing.T) {
	Convey("Given a variant request", t, func() {
		assembler := seeded(1)

		Convey("When three variants are produced", func() {
			variants := assembler.Variants(creative.AssembleOptions{
				Analysis: model.VideoAnalysis{EnergyLevel: model.EnergyHigh},
			}, 3)

			Convey("Then durations step around the target", func() {
				So(variants, ShouldHaveLength, 3)
				So(variants[0].DurationTarget, ShouldEqual, 13.0)
				So(variants[1].DurationTarget, ShouldEqual, 15.0)
				So(variants[2].DurationTarget, ShouldEqual, 17.0)
			})

			Convey("Then the second variant shouts its hook", func() {
				So(variants[1].Hook, ShouldEqual, strings.ToUpper(variants[1].Hook))
			})

			Convey("Then the third variant restyles minimal", func() {
				So(variants[2].TemplateStyle, ShouldEqual, "minimal-clean")
			})
		})

		Convey("When no variants are requested", func() {
			So(assembler.Variants(creative.AssembleOptions{}, 0), ShouldBeEmpty)
		})
	})
}
