package followertui

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// confidenceColor interpolates a smooth color ramp for the current top
// row relative to the score length, the same cold-to-hot blend the
// teacher's getLevelColorSmooth uses for dB level meters, re-keyed here to
// alignment progress instead of signal level: gray when just getting
// started, white once a third of the way through the score, warming to
// yellow near the end.
func confidenceColor(frac float64) colorful.Color {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	lowColor, _ := colorful.Hex("#808080")
	normalColor, _ := colorful.Hex("#FFFFFF")
	warmColor, _ := colorful.Hex("#FFE135")

	switch {
	case frac <= 0.33:
		return lowColor.BlendHcl(normalColor, frac/0.33)
	default:
		return normalColor.BlendHcl(warmColor, (frac-0.33)/0.67)
	}
}

// renderConfidence colors text using the terminal's own color profile,
// matching the teacher's termenv.String(...).Foreground(...) pattern in
// createVerticalBar.
func renderConfidence(text string, frac float64) string {
	profile := termenv.ColorProfile()
	c := confidenceColor(frac)
	return termenv.String(text).Foreground(profile.Color(c.Hex())).String()
}
