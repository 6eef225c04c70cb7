package chart

import "math"

// AspectType names a major aspect.
type AspectType string

const (
	Conjunction AspectType = "conjunction"
	Sextile     AspectType = "sextile"
	Square      AspectType = "square"
	Trine       AspectType = "trine"
	Opposition  AspectType = "opposition"
)

// Aspect is a detected angular relation between two longitudes.
type Aspect struct {
	Type  AspectType
	Angle float64 // exact angle of the aspect type
	Orb   float64 // deviation from exact, degrees
}

type aspectDef struct {
	typ    AspectType
	angle  float64
	maxOrb float64
}

// Checked in order of tightness; conjunction wins over a wide sextile.
var aspectDefs = []aspectDef{
	{Conjunction, 0, 8},
	{Sextile, 60, 6},
	{Square, 90, 8},
	{Trine, 120, 8},
	{Opposition, 180, 8},
}

// Separation returns the angular separation of two longitudes in [0, 180].
func Separation(a, b float64) float64 {
	diff := math.Abs(math.Mod(a-b, 360))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// DetectAspect reports the major aspect between two longitudes, if any
// falls within its orb.
func DetectAspect(a, b float64) (Aspect, bool) {
	sep := Separation(a, b)
	for _, def := range aspectDefs {
		orb := math.Abs(sep - def.angle)
		if orb <= def.maxOrb {
			return Aspect{Type: def.typ, Angle: def.angle, Orb: orb}, true
		}
	}
	return Aspect{}, false
}

// Strength grades an aspect by how much of its allowed orb it uses.
func (a Aspect) Strength() string {
	maxOrb := 8.0
	for _, def := range aspectDefs {
		if def.typ == a.Type {
			maxOrb = def.maxOrb
			break
		}
	}
	ratio := a.Orb / maxOrb
	switch {
	case ratio <= 0.5:
		return "strong"
	case ratio <= 0.75:
		return "medium"
	}
	return "weak"
}
