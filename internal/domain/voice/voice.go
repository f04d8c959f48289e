// Package voice models brand/customer voice profiles and their layered
// resolution.
package voice

// Tone and CTA-style values with dedicated creative treatment.
const (
	ToneLuxury = "luxury"
	ToneStreet = "street"

	CTAStyleSoft   = "soft"
	CTAStyleUrgent = "urgent"
)

// Profile biases text generation. Every field is optional; consumers fall
// back to literal defaults for missing values.
type Profile struct {
	Tone       string   `json:"tone,omitempty"`
	Vocabulary []string `json:"vocabulary,omitempty"`
	CTAStyle   string   `json:"cta_style,omitempty"`
	BrandName  string   `json:"brand_name,omitempty"`
}

// IsZero reports whether no field is set.
func (p Profile) IsZero() bool {
	return p.Tone == "" && len(p.Vocabulary) == 0 && p.CTAStyle == "" && p.BrandName == ""
}

// Resolve reduces an ordered list of partial profiles left-to-right:
// later layers override the fields they set. Callers pass layers in
// ascending precedence, e.g. default, brand, org, customer.
func Resolve(layers ...Profile) Profile {
	var out Profile
	for _, layer := range layers {
		if layer.Tone != "" {
			out.Tone = layer.Tone
		}
		if len(layer.Vocabulary) > 0 {
			out.Vocabulary = layer.Vocabulary
		}
		if layer.CTAStyle != "" {
			out.CTAStyle = layer.CTAStyle
		}
		if layer.BrandName != "" {
			out.BrandName = layer.BrandName
		}
	}
	return out
}
