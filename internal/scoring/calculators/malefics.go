package calculators

import (
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// MaleficsOnAngles penalizes Mars and Saturn in the first 90 degrees
// of the zodiac, a coarse angular-house proxy that needs no birth
// data. Exactly 0 longitude is excluded so defaulted bodies never
// trigger the penalty.
type MaleficsOnAngles struct{}

func (MaleficsOnAngles) Name() string { return "maleficsOnAngles" }

func (MaleficsOnAngles) Calculate(event *chart.Chart, _ *chart.Natal, _ string) float64 {
	penalty := 0.0
	for _, body := range []ephemeris.Body{ephemeris.Mars, ephemeris.Saturn} {
		lon := event.Position(body).Longitude
		if lon > 0 && lon < 90 {
			penalty -= 0.3
		}
	}
	return clamp(penalty, -1, 1)
}

// CombustionPenalty penalizes Mercury and Venus when close enough to
// the Sun to be combust. The two checks are independent and additive.
type CombustionPenalty struct{}

const combustionOrb = 8.0

func (CombustionPenalty) Name() string { return "combustionPenalty" }

func (CombustionPenalty) Calculate(event *chart.Chart, _ *chart.Natal, _ string) float64 {
	sun := event.Position(ephemeris.Sun).Longitude

	penalty := 0.0
	if chart.Separation(event.Position(ephemeris.Mercury).Longitude, sun) < combustionOrb {
		penalty -= 0.4
	}
	if chart.Separation(event.Position(ephemeris.Venus).Longitude, sun) < combustionOrb {
		penalty -= 0.2
	}
	return clamp(penalty, -1, 1)
}

// RetrogradePenalty penalizes retrograde Mercury, harder for
// communication-heavy activities.
type RetrogradePenalty struct{}

var communicationHeavy = map[string]bool{
	"communication": true,
	"writing":       true,
	"media":         true,
}

func (RetrogradePenalty) Name() string { return "retrogradePenalty" }

func (RetrogradePenalty) Calculate(event *chart.Chart, _ *chart.Natal, activityKey string) float64 {
	if !event.Position(ephemeris.Mercury).Retrograde {
		return 0
	}
	if communicationHeavy[activityKey] {
		return -0.6
	}
	return -0.3
}
