package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
	"github.com/desimealsnow/auspicious-time/internal/scoring/activity"
	"github.com/desimealsnow/auspicious-time/internal/scoring/calculators"
)

func fixtureChart(lons map[ephemeris.Body]float64) *chart.Chart {
	planets := make(map[ephemeris.Body]chart.PlanetPosition, len(ephemeris.Bodies))
	for _, body := range ephemeris.Bodies {
		lon := lons[body]
		planets[body] = chart.PlanetPosition{
			Body:      body,
			Name:      body.String(),
			Longitude: lon,
			Speed:     1,
			Sign:      int(lon/30) + 1,
			Nakshatra: chart.NakshatraOf(lon),
		}
	}
	c := &chart.Chart{
		Instant: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Lat:     28.6139,
		Lon:     77.2090,
		Planets: planets,
	}
	sun := planets[ephemeris.Sun].Longitude
	moon := planets[ephemeris.Moon].Longitude
	c.Panchanga = chart.Panchanga{
		Tithi:     int(ephemeris.NormalizeDegrees(moon-sun)/12) + 1,
		Nakshatra: chart.NakshatraOf(moon),
		Hora:      int(sun/15) + 1,
	}
	return c
}

func eventFixture() *chart.Chart {
	return fixtureChart(map[ephemeris.Body]float64{
		ephemeris.Sun:     10,
		ephemeris.Moon:    100,
		ephemeris.Mercury: 25,
		ephemeris.Venus:   40,
		ephemeris.Mars:    200,
		ephemeris.Jupiter: 95,
		ephemeris.Saturn:  310,
	})
}

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	return NewAggregator(activity.Defaults(), zerolog.Nop())
}

func TestAggregateBoundsEveryActivity(t *testing.T) {
	agg := newTestAggregator(t)
	event := eventFixture()

	for _, key := range []string{"travel", "business", "marriage", "health"} {
		breakdown, reasons := agg.Aggregate(event, nil, key)
		assert.GreaterOrEqual(t, breakdown.FinalScore, 0.0, key)
		assert.LessOrEqual(t, breakdown.FinalScore, 100.0, key)
		// One decimal place
		assert.InDelta(t, breakdown.FinalScore, mround1(breakdown.FinalScore), 1e-9, key)
		assert.NotNil(t, reasons, key)
		assert.Len(t, breakdown.SubScores, 13, key)
	}
}

func mround1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func TestAggregateUnknownActivityFallsBackToDefault(t *testing.T) {
	agg := newTestAggregator(t)
	event := eventFixture()

	travel, _ := agg.Aggregate(event, nil, "travel")
	unknown, _ := agg.Aggregate(event, nil, "underwater_basket_weaving")
	empty, _ := agg.Aggregate(event, nil, "")

	assert.Equal(t, travel.FinalScore, unknown.FinalScore)
	assert.Equal(t, travel.FinalScore, empty.FinalScore)
}

func TestAggregateActivityKeyCaseInsensitive(t *testing.T) {
	agg := newTestAggregator(t)
	event := eventFixture()

	lower, _ := agg.Aggregate(event, nil, "travel")
	mixed, _ := agg.Aggregate(event, nil, "Travel")

	assert.Equal(t, lower.FinalScore, mixed.FinalScore)
	assert.Equal(t, lower.SubScores, mixed.SubScores)
}

func TestAggregateDeterministic(t *testing.T) {
	agg := newTestAggregator(t)
	event := eventFixture()

	first, firstReasons := agg.Aggregate(event, nil, "marriage")
	second, secondReasons := agg.Aggregate(event, nil, "marriage")

	assert.Equal(t, first, second)
	assert.Equal(t, firstReasons, secondReasons)
}

type panickyCalculator struct{}

func (panickyCalculator) Name() string { return "panicky" }
func (panickyCalculator) Calculate(*chart.Chart, *chart.Natal, string) float64 {
	panic("boom")
}

type nonFiniteCalculator struct{ value float64 }

func (nonFiniteCalculator) Name() string { return "nonFinite" }
func (c nonFiniteCalculator) Calculate(*chart.Chart, *chart.Natal, string) float64 {
	return c.value
}

func TestSafeCalculateRecoversPanic(t *testing.T) {
	agg := newTestAggregator(t)
	value := agg.safeCalculate(panickyCalculator{}, eventFixture(), nil, "travel")
	assert.Equal(t, calculators.Neutral, value)
}

func TestSafeCalculateNeutralizesNonFinite(t *testing.T) {
	agg := newTestAggregator(t)
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		value := agg.safeCalculate(nonFiniteCalculator{value: v}, eventFixture(), nil, "travel")
		assert.Equal(t, calculators.Neutral, value)
	}
}

func TestReasonsPositivesFirstCapped(t *testing.T) {
	agg := newTestAggregator(t)

	all := map[string]float64{}
	for _, c := range agg.calcs {
		all[c.Name()] = 0.9
	}
	got := agg.reasons(all)
	assert.Equal(t, []string{
		"Strong Moon phase",
		"Benefics well placed",
		"Favorable lunar mansion",
		"Good lunar day",
		"Suitable planetary hour",
		"Beneficial Tara Bala",
	}, got)
}

func TestReasonsMixedOrdering(t *testing.T) {
	agg := newTestAggregator(t)

	got := agg.reasons(map[string]float64{
		"lunarStrength":       0.5,
		"shadowPeriodPenalty": -0.8,
		"retrogradePenalty":   -0.3,
	})
	assert.Equal(t, []string{
		"Strong Moon phase",
		"Traditional shadow period",
		"Mercury retrograde",
	}, got)
}

func TestReasonsEmptyIsSlice(t *testing.T) {
	agg := newTestAggregator(t)
	got := agg.reasons(map[string]float64{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommendationBands(t *testing.T) {
	assert.Equal(t, "HIGHLY FAVORABLE", Recommendation(75))
	assert.Equal(t, "HIGHLY FAVORABLE", Recommendation(92.5))
	assert.Equal(t, "FAVORABLE", Recommendation(60))
	assert.Equal(t, "FAVORABLE", Recommendation(74.9))
	assert.Equal(t, "NEUTRAL", Recommendation(40))
	assert.Equal(t, "NEUTRAL", Recommendation(59.9))
	assert.Equal(t, "AVOID", Recommendation(39.9))
	assert.Equal(t, "AVOID", Recommendation(0))
}

func TestScoreIDStableWithinMinute(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	withSeconds := base.Add(42 * time.Second)

	a := ScoreID(base, 28.6139, 77.2090, "Asia/Kolkata", "travel")
	b := ScoreID(withSeconds, 28.6139, 77.2090, "Asia/Kolkata", "travel")
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestScoreIDCoordinateRounding(t *testing.T) {
	at := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

	a := ScoreID(at, 28.6139, 77.2090, "Asia/Kolkata", "travel")
	b := ScoreID(at, 28.61390000004, 77.20900000001, "Asia/Kolkata", "travel")
	assert.Equal(t, a, b)

	moved := ScoreID(at, 28.614, 77.2090, "Asia/Kolkata", "travel")
	assert.NotEqual(t, a, moved)
}

func TestScoreIDVariesByActivityAndMinute(t *testing.T) {
	at := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

	travel := ScoreID(at, 28.6139, 77.2090, "Asia/Kolkata", "travel")
	marriage := ScoreID(at, 28.6139, 77.2090, "Asia/Kolkata", "marriage")
	later := ScoreID(at.Add(time.Minute), 28.6139, 77.2090, "Asia/Kolkata", "travel")

	assert.NotEqual(t, travel, marriage)
	assert.NotEqual(t, travel, later)
}

// scriptedOracle keeps each body at a fixed longitude so engine tests
// are deterministic without real ephemeris math.
type scriptedOracle struct{}

func (scriptedOracle) Calc(jd float64, body ephemeris.Body) (ephemeris.Position, error) {
	return ephemeris.Position{Longitude: float64(body) * 40, Speed: 1}, nil
}

func (scriptedOracle) Ayanamsha(jd float64) float64 { return 24 }

func newTestEngine() *Engine {
	builder := chart.NewBuilder(scriptedOracle{}, zerolog.Nop())
	return NewEngine(builder, activity.Defaults(), zerolog.Nop())
}

func TestEngineScoreInstant(t *testing.T) {
	engine := newTestEngine()
	at := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

	res, err := engine.ScoreInstant(at, 28.6139, 77.2090, nil, "travel", "Asia/Kolkata")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 100.0)
	assert.Len(t, res.ScoreID, 16)
	assert.Equal(t, chart.L0, res.Level)
	assert.NotNil(t, res.Chart)
	assert.Equal(t, at, res.Instant)
}

func TestEngineScoreInstantIdempotent(t *testing.T) {
	engine := newTestEngine()
	at := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

	first, err := engine.ScoreInstant(at, 28.6139, 77.2090, nil, "business", "UTC")
	require.NoError(t, err)
	second, err := engine.ScoreInstant(at, 28.6139, 77.2090, nil, "business", "UTC")
	require.NoError(t, err)

	assert.Equal(t, first.ScoreID, second.ScoreID)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Breakdown, second.Breakdown)
}

func TestSubScoreNamesDeclarationOrder(t *testing.T) {
	engine := newTestEngine()
	names := engine.SubScoreNames()
	assert.Equal(t, []string{
		"lunarStrength",
		"beneficPlacement",
		"mansionSuitability",
		"lunarDaySuitability",
		"planetaryHourSuitability",
		"maleficsOnAngles",
		"shadowPeriodPenalty",
		"combustionPenalty",
		"retrogradePenalty",
		"taraBala",
		"chandraBala",
		"transitToNatalAngles",
		"eventChartHygiene",
	}, names)
}

func TestSortedSubScores(t *testing.T) {
	b := Breakdown{SubScores: map[string]float64{
		"b": 0.5,
		"a": 0.5,
		"c": -0.2,
		"d": 0.9,
	}}
	assert.Equal(t, []string{"d", "a", "b", "c"}, SortedSubScores(b))
}

func TestAnalyzeRendersBreakdown(t *testing.T) {
	res := &Result{
		Score: 82,
		Level: chart.L0,
		Breakdown: Breakdown{SubScores: map[string]float64{
			"mansionSuitability":       0.8,
			"lunarDaySuitability":      0.6,
			"planetaryHourSuitability": 0.5,
			"lunarStrength":            0.7,
			"retrogradePenalty":        -0.3,
		}},
	}
	a := Analyze(res)

	assert.Contains(t, a.Strengths, "Favorable Panchang timing")
	assert.Contains(t, a.Strengths, "Strong Moon position")
	assert.Contains(t, a.Challenges, "Mercury retrograde may cause communication issues")
	assert.Contains(t, a.Recommendations, "Consider providing birth time for more accurate analysis")
	assert.Contains(t, a.Recommendations, "Excellent timing for this activity")
}

func TestAnalyzeLowScore(t *testing.T) {
	res := &Result{
		Score:     32,
		Level:     chart.L2,
		Breakdown: Breakdown{SubScores: map[string]float64{}},
	}
	a := Analyze(res)

	assert.Empty(t, a.Strengths)
	assert.Equal(t, []string{"Consider choosing a different time for this activity"}, a.Recommendations)
}

func TestAnalyzeMoonDignity(t *testing.T) {
	c := eventFixture()
	p := c.Planets[ephemeris.Moon]
	p.Dignity = chart.DignityExaltation
	c.Planets[ephemeris.Moon] = p

	res := &Result{
		Score:     50,
		Level:     chart.L2,
		Breakdown: Breakdown{SubScores: map[string]float64{}},
		Chart:     c,
	}
	assert.Contains(t, Analyze(res).Strengths, "Moon dignified in its sign")

	p.Dignity = chart.DignityFall
	c.Planets[ephemeris.Moon] = p
	assert.Contains(t, Analyze(res).Challenges, "Moon debilitated in its sign")
}

func TestTransitAspectsSortedByOrb(t *testing.T) {
	natal := &chart.Natal{
		Level: chart.L1,
		Chart: fixtureChart(map[ephemeris.Body]float64{
			ephemeris.Sun:     50,
			ephemeris.Moon:    300,
			ephemeris.Mercury: 130,
			ephemeris.Venus:   130,
			ephemeris.Mars:    130,
			ephemeris.Jupiter: 130,
			ephemeris.Saturn:  130,
		}),
	}
	event := fixtureChart(map[ephemeris.Body]float64{
		ephemeris.Sun:     10,
		ephemeris.Moon:    100,
		ephemeris.Mercury: 130,
		ephemeris.Venus:   302,
		ephemeris.Mars:    15,
		ephemeris.Jupiter: 170,
		ephemeris.Saturn:  220,
	})

	got := TransitAspects(event, natal)
	require.Len(t, got, 2)

	assert.Equal(t, "Jupiter", got[0].EventPlanet)
	assert.Equal(t, "Natal Sun", got[0].NatalPoint)
	assert.Equal(t, string(chart.Trine), got[0].Aspect)
	assert.Equal(t, "strong", got[0].Strength)

	assert.Equal(t, "Venus", got[1].EventPlanet)
	assert.Equal(t, "Natal Moon", got[1].NatalPoint)
	assert.Equal(t, string(chart.Conjunction), got[1].Aspect)
	assert.InDelta(t, 2, got[1].Orb, 1e-9)
}

func TestTransitAspectsBelowLevelOne(t *testing.T) {
	event := eventFixture()

	assert.Empty(t, TransitAspects(event, nil))
	assert.Empty(t, TransitAspects(event, &chart.Natal{Level: chart.L0, Chart: eventFixture()}))
}
