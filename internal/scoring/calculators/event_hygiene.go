package calculators

import (
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// EventChartHygiene inspects the event chart's own houses: malefics in
// houses 1, 8 or 12 penalize, benefics within orb of the ascendant or
// midheaven reward. Houses need a trusted birth location, so the
// factor is active only at L2.
type EventChartHygiene struct{}

const hygieneOrb = 8.0

var badHouses = map[int]bool{1: true, 8: true, 12: true}

func (EventChartHygiene) Name() string { return "eventChartHygiene" }

func (EventChartHygiene) Calculate(event *chart.Chart, natal *chart.Natal, _ string) float64 {
	if natal == nil || natal.Level != chart.L2 || event.Angles == nil {
		return Neutral
	}

	total := 0.0
	for _, malefic := range []ephemeris.Body{ephemeris.Mars, ephemeris.Saturn} {
		house := event.Angles.HouseOf(event.Position(malefic).Longitude)
		if badHouses[house] {
			total -= 0.4
		}
	}
	for _, benefic := range []ephemeris.Body{ephemeris.Jupiter, ephemeris.Venus} {
		lon := event.Position(benefic).Longitude
		if chart.Separation(lon, event.Angles.Ascendant) <= hygieneOrb ||
			chart.Separation(lon, event.Angles.MC) <= hygieneOrb {
			total += 0.3
		}
	}
	return clamp(total, -1, 1)
}
