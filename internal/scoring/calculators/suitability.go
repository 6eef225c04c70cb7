package calculators

import (
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/scoring/activity"
)

// The three calendar-suitability factors share the tri-tier table
// pattern and differ only in which calendar index they rate and the
// score magnitudes per tier.

// MansionSuitability rates the event's lunar mansion for the activity.
type MansionSuitability struct {
	tables *activity.Tables
}

func (MansionSuitability) Name() string { return "mansionSuitability" }

func (m MansionSuitability) Calculate(event *chart.Chart, _ *chart.Natal, activityKey string) float64 {
	profile := m.tables.Lookup(activityKey)
	return profile.Mansions.Rate(event.Panchanga.Nakshatra, 0.8, 0.4, -0.6, 0.1)
}

// LunarDaySuitability rates the event's tithi for the activity.
type LunarDaySuitability struct {
	tables *activity.Tables
}

func (LunarDaySuitability) Name() string { return "lunarDaySuitability" }

func (l LunarDaySuitability) Calculate(event *chart.Chart, _ *chart.Natal, activityKey string) float64 {
	profile := l.tables.Lookup(activityKey)
	return profile.LunarDays.Rate(event.Panchanga.Tithi, 0.6, 0.3, -0.4, 0.1)
}

// PlanetaryHourSuitability rates the event's hora for the activity.
type PlanetaryHourSuitability struct {
	tables *activity.Tables
}

func (PlanetaryHourSuitability) Name() string { return "planetaryHourSuitability" }

func (p PlanetaryHourSuitability) Calculate(event *chart.Chart, _ *chart.Natal, activityKey string) float64 {
	profile := p.tables.Lookup(activityKey)
	return profile.Hours.Rate(event.Panchanga.Hora, 0.5, 0.2, -0.3, 0.1)
}
