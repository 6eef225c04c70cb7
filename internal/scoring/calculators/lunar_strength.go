package calculators

import (
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// LunarStrength scores the Moon's phase. Strength decreases from the
// new-moon area toward full, with a bonus while waxing.
type LunarStrength struct{}

func (LunarStrength) Name() string { return "lunarStrength" }

func (LunarStrength) Calculate(event *chart.Chart, _ *chart.Natal, _ string) float64 {
	moon := event.Position(ephemeris.Moon)
	sun := event.Position(ephemeris.Sun)

	phase := ephemeris.NormalizeDegrees(moon.Longitude - sun.Longitude)
	waxing := phase < 180

	var strength float64
	switch {
	case phase < 45 || phase > 315:
		strength = 0.8
	case phase < 90 || phase > 270:
		strength = 0.6
	case phase < 135 || phase > 225:
		strength = 0.4
	default:
		strength = 0.2
	}

	if waxing {
		strength += 0.2
	} else {
		strength -= 0.1
	}

	return clamp(strength, -1, 1)
}
