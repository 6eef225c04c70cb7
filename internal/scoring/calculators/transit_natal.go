package calculators

import (
	"math"

	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// TransitToNatalAngles scores transiting benefics and malefics against
// natal reference points: Sun and Moon from L1 up, ascendant and
// midheaven only at L2. Benefic aspects add, malefic aspects subtract,
// the sum is clamped.
type TransitToNatalAngles struct{}

func (TransitToNatalAngles) Name() string { return "transitToNatalAngles" }

type aspectRule struct {
	angle  float64
	orb    float64
	weight float64
}

var (
	beneficRules = []aspectRule{
		{0, 8, 0.3},    // conjunction
		{60, 6, 0.5},   // sextile
		{120, 8, 0.7},  // trine
	}
	maleficRules = []aspectRule{
		{0, 8, -0.4},   // conjunction
		{90, 8, -0.6},  // square
		{180, 8, -0.5}, // opposition
	}
)

func (TransitToNatalAngles) Calculate(event *chart.Chart, natal *chart.Natal, _ string) float64 {
	if natal == nil || !natal.Level.AtLeast(chart.L1) {
		return Neutral
	}

	points := []float64{
		natal.Chart.Position(ephemeris.Sun).Longitude,
		natal.Chart.Position(ephemeris.Moon).Longitude,
	}
	if natal.Level == chart.L2 && natal.Chart.Angles != nil {
		points = append(points, natal.Chart.Angles.Ascendant, natal.Chart.Angles.MC)
	}

	total := 0.0
	for _, benefic := range []ephemeris.Body{ephemeris.Jupiter, ephemeris.Venus} {
		total += aspectContribution(event.Position(benefic).Longitude, points, beneficRules)
	}
	for _, malefic := range []ephemeris.Body{ephemeris.Mars, ephemeris.Saturn} {
		total += aspectContribution(event.Position(malefic).Longitude, points, maleficRules)
	}
	return clamp(total, -1, 1)
}

func aspectContribution(transitLon float64, points []float64, rules []aspectRule) float64 {
	sum := 0.0
	for _, point := range points {
		sep := chart.Separation(transitLon, point)
		for _, rule := range rules {
			if math.Abs(sep-rule.angle) <= rule.orb {
				sum += rule.weight
				break
			}
		}
	}
	return sum
}
