package stress

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ReferenceStress is the STK400 yield stress in N/mm², the fixed scale of ColorOf.
const ReferenceStress = 235.0

// blueHue is the hue of an unstressed member, in turns.
const blueHue = 0.66

// Color is an HSL triple with every component in [0, 1]; Hue is a fraction of
// a full turn.
type Color struct {
	Hue        float64 `json:"h"`
	Saturation float64 `json:"s"`
	Lightness  float64 `json:"l"`
}

var (
	// Alert marks members above the reference stress (full-saturation magenta).
	Alert = Color{Hue: 300.0 / 360.0, Saturation: 1, Lightness: 0.5}
	// Neutral is used when there is nothing to color by.
	Neutral = Color{Hue: 0, Saturation: 0, Lightness: float64(0x88) / 255}
)

func (c Color) RGB() colorful.Color {
	return colorful.Hsl(c.Hue*360, c.Saturation, c.Lightness).Clamped()
}

// Hex returns the #rrggbb form used by the render host.
func (c Color) Hex() string {
	return c.RGB().Hex()
}

func (c Color) RGB255() (r, g, b uint8) {
	return c.RGB().RGB255()
}

// Mapper maps stress to a blue-green-red ramp normalised by Reference.
type Mapper struct {
	Reference float64
}

// ColorOf uses the fixed 235 N/mm² reference regardless of material.
func ColorOf(stress float64) Color {
	return Mapper{Reference: ReferenceStress}.Color(stress)
}

// ForYield returns a mapper normalised by the given yield stress, falling back
// to ReferenceStress when yield is not positive.
func ForYield(yield float64) Mapper {
	if !(yield > 0) || math.IsInf(yield, 0) {
		return Mapper{Reference: ReferenceStress}
	}
	return Mapper{Reference: yield}
}

func (m Mapper) Color(stress float64) Color {
	ref := m.Reference
	if !(ref > 0) {
		ref = ReferenceStress
	}
	if stress > ref {
		return Alert
	}
	t := stress / ref
	if !(t > 0) {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Color{Hue: (1 - t) * blueHue, Saturation: 1, Lightness: 0.5}
}

// Ratio is stress over the reference, unclamped.
func (m Mapper) Ratio(stress float64) float64 {
	ref := m.Reference
	if !(ref > 0) {
		ref = ReferenceStress
	}
	return stress / ref
}
