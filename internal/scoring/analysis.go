package scoring

import (
	"sort"

	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// TransitAspect is one detected aspect between an event planet and a
// natal reference point.
type TransitAspect struct {
	EventPlanet string  `json:"eventPlanet"`
	NatalPoint  string  `json:"natalPoint"`
	Aspect      string  `json:"aspect"`
	Orb         float64 `json:"orb"`
	Strength    string  `json:"strength"`
}

// TransitAspects lists every aspect between the event chart's planets
// and the natal points available at the natal level, tightest first.
func TransitAspects(event *chart.Chart, natal *chart.Natal) []TransitAspect {
	aspects := []TransitAspect{}
	if natal == nil || !natal.Level.AtLeast(chart.L1) {
		return aspects
	}

	type point struct {
		name string
		lon  float64
	}
	points := []point{
		{"Natal Sun", natal.Chart.Position(ephemeris.Sun).Longitude},
		{"Natal Moon", natal.Chart.Position(ephemeris.Moon).Longitude},
	}
	if natal.Level == chart.L2 && natal.Chart.Angles != nil {
		points = append(points,
			point{"Natal ASC", natal.Chart.Angles.Ascendant},
			point{"Natal MC", natal.Chart.Angles.MC},
		)
	}

	for _, body := range ephemeris.Bodies {
		pos := event.Position(body)
		for _, p := range points {
			asp, ok := chart.DetectAspect(pos.Longitude, p.lon)
			if !ok {
				continue
			}
			aspects = append(aspects, TransitAspect{
				EventPlanet: pos.Name,
				NatalPoint:  p.name,
				Aspect:      string(asp.Type),
				Orb:         asp.Orb,
				Strength:    asp.Strength(),
			})
		}
	}

	sort.Slice(aspects, func(i, j int) bool { return aspects[i].Orb < aspects[j].Orb })
	return aspects
}

// Analysis is the mechanical textual rendering of a scored result.
type Analysis struct {
	Strengths       []string `json:"strengths"`
	Challenges      []string `json:"challenges"`
	Recommendations []string `json:"recommendations"`
}

// Analyze renders strengths, challenges and recommendations from the
// breakdown's sign and magnitude per factor. No new computation.
func Analyze(res *Result) Analysis {
	sub := res.Breakdown.SubScores
	a := Analysis{
		Strengths:       []string{},
		Challenges:      []string{},
		Recommendations: []string{},
	}

	panchang := (sub["mansionSuitability"] + sub["lunarDaySuitability"] + sub["planetaryHourSuitability"]) / 3
	if panchang > 0.3 {
		a.Strengths = append(a.Strengths, "Favorable Panchang timing")
	}
	if sub["chandraBala"] > 0.3 {
		a.Strengths = append(a.Strengths, "Strong Chandra Bala (Moon position)")
	}
	if sub["taraBala"] > 0.3 {
		a.Strengths = append(a.Strengths, "Beneficial Tara Bala (mansion compatibility)")
	}
	if sub["transitToNatalAngles"] > 0.3 {
		a.Strengths = append(a.Strengths, "Positive transit aspects to natal points")
	}
	if sub["eventChartHygiene"] > 0.3 {
		a.Strengths = append(a.Strengths, "Good event chart placement")
	}
	if sub["lunarStrength"] > 0.3 {
		a.Strengths = append(a.Strengths, "Strong Moon position")
	}
	if res.Chart != nil {
		switch res.Chart.Position(ephemeris.Moon).Dignity {
		case chart.DignityOwn, chart.DignityExaltation:
			a.Strengths = append(a.Strengths, "Moon dignified in its sign")
		case chart.DignityFall, chart.DignityDetriment:
			a.Challenges = append(a.Challenges, "Moon debilitated in its sign")
		}
	}

	if sub["retrogradePenalty"] < -0.2 {
		a.Challenges = append(a.Challenges, "Mercury retrograde may cause communication issues")
	}
	if sub["combustionPenalty"] < -0.2 {
		a.Challenges = append(a.Challenges, "Planetary combustion may reduce effectiveness")
	}
	if sub["shadowPeriodPenalty"] < -0.2 {
		a.Challenges = append(a.Challenges, "Event falls in a traditional shadow period")
	}
	if sub["chandraBala"] < -0.3 {
		a.Challenges = append(a.Challenges, "Challenging Chandra Bala")
	}
	if sub["taraBala"] < -0.3 {
		a.Challenges = append(a.Challenges, "Difficult Tara Bala")
	}

	switch res.Level {
	case chart.L0:
		a.Recommendations = append(a.Recommendations, "Consider providing birth time for more accurate analysis")
	case chart.L1:
		a.Recommendations = append(a.Recommendations, "Consider providing birth location for complete analysis")
	}

	switch {
	case res.Score < 40:
		a.Recommendations = append(a.Recommendations, "Consider choosing a different time for this activity")
	case res.Score < 60:
		a.Recommendations = append(a.Recommendations, "Proceed with caution and consider alternatives")
	case res.Score >= 75:
		a.Recommendations = append(a.Recommendations, "Excellent timing for this activity")
	}

	return a
}
