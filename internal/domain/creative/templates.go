package creative

import "github.com/okian/wrapbrain/internal/domain/model"

// Literal fallbacks substituted when the analysis carries no vehicle or
// color facts.
const (
	fallbackVehicle = "this ride"
	fallbackColor   = "stunning finish"
	fallbackBrand   = "our shop"
)

// Hook templates for the general pseudo-random pick. {vehicle} and
// {color} are substituted before use.
var hookTemplates = []string{
	"Watch this {vehicle} transform 🔥",
	"You won't believe this {color} wrap",
	"POV: your {vehicle} gets a new identity",
	"This {color} finish hits different",
	"From stock to stunning: {vehicle}",
	"The {vehicle} glow-up you didn't know you needed",
}

// Tone-forced hooks checked before the random pick.
var toneHooks = map[string]string{
	"luxury": "Elevating the {vehicle}. Every detail, perfected.",
	"street": "This {vehicle} just leveled up 💯",
}

// Hooks forced by shot content, highest priority.
const (
	beforeAfterHook = "Before vs After: {vehicle}"
	revealHook      = "Wait for the reveal... 👀"
)

// Caption templates; {vehicle}, {color}, and {brand} are substituted.
var captionTemplates = []string{
	"Another {color} transformation out of {brand}. This {vehicle} is ready to turn heads.",
	"Full wrap on this {vehicle} in {color}. What do you think? 👇",
	"{brand} bringing the vision to life — {color} on a {vehicle}.",
}

// CTA pool for the pseudo-random pick.
var ctaTemplates = []string{
	"DM 'WRAP' for a free quote",
	"Tap the link in bio to book your build",
	"Comment your dream color 👇",
	"Send us your ride — we'll send a quote",
	"Follow for daily transformations",
}

// CTAs forced by voice profile cta_style.
var styleCTAs = map[string]string{
	"soft":   "DM us when you're ready to start your transformation ✨",
	"urgent": "Book now — this month's slots are almost gone! 📲",
}

// baseHashtags always lead the hashtag list, in this order.
var baseHashtags = []string{"#wrap", "#vinylwrap", "#carwrap", "#transformation"}

// revealHashtags are appended when the analysis contains a reveal shot.
var revealHashtags = []string{"#reveal", "#satisfying"}

// musicSuggestions maps energy level to a music direction.
var musicSuggestions = map[model.EnergyLevel]string{
	model.EnergyHigh:   "high-energy phonk or EDM drop",
	model.EnergyMedium: "upbeat hip-hop or pop",
	model.EnergyLow:    "chill lo-fi or cinematic ambient",
}

// Template style identifiers.
const (
	styleCinematicPremium = "cinematic-premium"
	styleDynamicFastCut   = "dynamic-fast-cut"
	styleElegantSlow      = "elegant-slow"
	styleBalancedStandard = "balanced-standard"
	styleMinimalClean     = "minimal-clean"
)
