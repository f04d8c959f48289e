package intel

import (
	"regexp"
	"strings"

	"github.com/okian/wrapbrain/internal/domain/model"
)

// labelRule maps description keywords to a scene label. Rules run in
// declaration order and the first match wins.
type labelRule struct {
	keywords []string
	label    model.SceneLabel
}

var labelRules = []labelRule{
	{[]string{"hook", "attention"}, model.LabelHookAction},
	{[]string{"reveal", "final"}, model.LabelRevealShot},
	{[]string{"detail", "close"}, model.LabelDetail},
	{[]string{"before"}, model.LabelBefore},
	{[]string{"after"}, model.LabelAfter},
	{[]string{"talking", "speaking"}, model.LabelTalkingHead},
	{[]string{"transition"}, model.LabelTransition},
}

// classifyLabel derives a scene label from a cut description. Unmatched
// descriptions fall back to b-roll.
func classifyLabel(description string) model.SceneLabel {
	desc := strings.ToLower(description)
	for _, rule := range labelRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.label
			}
		}
	}
	return model.LabelBRoll
}

// actionRule maps description keywords to an installer action. Rules run
// in declaration order and the first match wins.
type actionRule struct {
	keywords []string
	action   model.SceneAction
}

var actionRules = []actionRule{
	{[]string{"vinyl", "applying", "wrap"}, model.ActionApplyingVinyl},
	{[]string{"squeegee"}, model.ActionSqueegee},
	{[]string{"heat", "gun"}, model.ActionHeatGun},
	{[]string{"clean"}, model.ActionCleaning},
	{[]string{"reveal", "unwrap"}, model.ActionReveal},
}

// classifyAction derives an installer action from a cut description. A
// description mentioning both "before" and "after" is a comparison shot;
// no match leaves the action empty.
func classifyAction(description string) model.SceneAction {
	desc := strings.ToLower(description)
	for _, rule := range actionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.action
			}
		}
	}
	if strings.Contains(desc, "before") && strings.Contains(desc, "after") {
		return model.ActionComparison
	}
	return ""
}

// Fixed transcript vocabularies for vehicle and wrap-color extraction.
// First match wins, case-insensitive; no match yields an empty string.
var (
	vehiclePattern = regexp.MustCompile(`(?i)\b(cybertruck|model [3sxy]|tesla|mustang|camaro|corvette|charger|challenger|silverado|tacoma|raptor|f-?150|wrangler|supra|gtr|m[234]|bmw|audi|mercedes|porsche|lamborghini|ferrari)\b`)
	colorPattern   = regexp.MustCompile(`(?i)\b(matte|gloss|satin|chrome|metallic)?\s*(black|white|red|blue|green|purple|orange|yellow|pink|gold|silver|gr[ae]y|teal|bronze|midnight)\b`)
)

// extractVehicle returns the first vehicle mention in the transcript.
func extractVehicle(transcript string) string {
	m := vehiclePattern.FindString(transcript)
	return strings.ToLower(strings.TrimSpace(m))
}

// extractWrapColor returns the first color mention and, when the color is
// prefixed by a finish word, the finish as well.
func extractWrapColor(transcript string) (color, finish string) {
	m := colorPattern.FindStringSubmatch(transcript)
	if m == nil {
		return "", ""
	}
	return strings.ToLower(m[2]), strings.ToLower(m[1])
}
