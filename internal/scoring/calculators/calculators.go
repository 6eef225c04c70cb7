// Package calculators implements the independent sub-score factors.
// Each calculator is a pure function of an event chart, an optional
// natal chart and an activity key, returning a value in [-1, 1].
package calculators

import (
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/scoring/activity"
)

// Neutral is the sub-score emitted when a factor has insufficient data
// to discriminate (missing natal tier, polar sun geometry). The
// aggregator substitutes the same value for NaN results, so the whole
// degradation policy lives in exactly two places.
const Neutral = 0.0

// Calculator is one scoring factor.
type Calculator interface {
	Name() string
	Calculate(event *chart.Chart, natal *chart.Natal, activityKey string) float64
}

// Registry returns all calculators in declaration order. The order is
// load-bearing: the aggregator uses it as the tie-break for reasons.
func Registry(tables *activity.Tables) []Calculator {
	return []Calculator{
		LunarStrength{},
		BeneficPlacement{},
		MansionSuitability{tables: tables},
		LunarDaySuitability{tables: tables},
		PlanetaryHourSuitability{tables: tables},
		MaleficsOnAngles{},
		ShadowPeriodPenalty{tables: tables},
		CombustionPenalty{},
		RetrogradePenalty{},
		TaraBala{},
		ChandraBala{},
		TransitToNatalAngles{},
		EventChartHygiene{},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
