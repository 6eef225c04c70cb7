// Package scoring combines the sub-score calculators into weighted
// favorability scores with explainable reasons.
package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/scoring/activity"
	"github.com/desimealsnow/auspicious-time/internal/scoring/calculators"
)

// Reason trigger thresholds
const (
	positiveReasonThreshold = 0.3
	negativeReasonThreshold = -0.2
	maxReasons              = 6
)

// Breakdown is the immutable result of one aggregation.
type Breakdown struct {
	SubScores  map[string]float64 `json:"subScores"`
	RawScore   float64            `json:"rawScore"`
	FinalScore float64            `json:"finalScore"`
}

// Result is a fully scored instant.
type Result struct {
	Instant   time.Time   `json:"instant"`
	Score     float64     `json:"score"`
	Breakdown Breakdown   `json:"breakdown"`
	Reasons   []string    `json:"reasons"`
	ScoreID   string      `json:"scoreId"`
	Level     chart.Level `json:"level"`
	Chart     *chart.Chart `json:"-"`
}

// Recommendation bands the final score into a verdict.
func Recommendation(score float64) string {
	switch {
	case score >= 75:
		return "HIGHLY FAVORABLE"
	case score >= 60:
		return "FAVORABLE"
	case score >= 40:
		return "NEUTRAL"
	}
	return "AVOID"
}

// Aggregator runs every calculator and folds the results through the
// activity's weight vector.
type Aggregator struct {
	calcs  []calculators.Calculator
	tables *activity.Tables
	log    zerolog.Logger
}

// NewAggregator creates an aggregator over the full calculator registry.
func NewAggregator(tables *activity.Tables, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		calcs:  calculators.Registry(tables),
		tables: tables,
		log:    log.With().Str("component", "aggregator").Logger(),
	}
}

// Aggregate scores one event chart. Total over activity keys: unknown
// activities use the default profile. A panicking or NaN calculator
// contributes the neutral value instead of failing the aggregation.
func (a *Aggregator) Aggregate(event *chart.Chart, natal *chart.Natal, activityKey string) (Breakdown, []string) {
	key := activity.Normalize(activityKey)
	profile := a.tables.Lookup(key)

	subScores := make(map[string]float64, len(a.calcs))
	raw := 0.0
	for _, calc := range a.calcs {
		value := a.safeCalculate(calc, event, natal, key)
		value = clamp(value, -1, 1)
		subScores[calc.Name()] = value
		raw += value * profile.Weights[calc.Name()]
	}

	final := math.Round(clamp((raw+1)*50, 0, 100)*10) / 10

	breakdown := Breakdown{
		SubScores:  subScores,
		RawScore:   raw,
		FinalScore: final,
	}
	return breakdown, a.reasons(subScores)
}

func (a *Aggregator) safeCalculate(calc calculators.Calculator, event *chart.Chart, natal *chart.Natal, key string) (value float64) {
	defer func() {
		if p := recover(); p != nil {
			a.log.Error().
				Str("calculator", calc.Name()).
				Interface("panic", p).
				Msg("Calculator panicked, using neutral value")
			value = calculators.Neutral
		}
	}()

	value = calc.Calculate(event, natal, key)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		a.log.Warn().
			Str("calculator", calc.Name()).
			Msg("Calculator returned non-finite value, using neutral value")
		return calculators.Neutral
	}
	return value
}

var reasonLabels = map[string][2]string{
	// [positive, negative]
	"lunarStrength":            {"Strong Moon phase", "Weak Moon phase"},
	"beneficPlacement":         {"Benefics well placed", "Benefics poorly placed"},
	"mansionSuitability":       {"Favorable lunar mansion", "Unfavorable lunar mansion"},
	"lunarDaySuitability":      {"Good lunar day", "Challenging lunar day"},
	"planetaryHourSuitability": {"Suitable planetary hour", "Unsuitable planetary hour"},
	"maleficsOnAngles":         {"", "Malefics in angular houses"},
	"shadowPeriodPenalty":      {"", "Traditional shadow period"},
	"combustionPenalty":        {"", "Planetary combustion"},
	"retrogradePenalty":        {"", "Mercury retrograde"},
	"taraBala":                 {"Beneficial Tara Bala", "Difficult Tara Bala"},
	"chandraBala":              {"Strong Chandra Bala", "Challenging Chandra Bala"},
	"transitToNatalAngles":     {"Supportive transits to natal points", "Stressful transits to natal points"},
	"eventChartHygiene":        {"Clean event chart", "Afflicted event chart"},
}

// reasons builds the ordered threshold-triggered label list: positive
// reasons first, calculator declaration order as the tie-break, capped.
func (a *Aggregator) reasons(subScores map[string]float64) []string {
	var positive, negative []string
	for _, calc := range a.calcs {
		labels := reasonLabels[calc.Name()]
		value := subScores[calc.Name()]
		if value > positiveReasonThreshold && labels[0] != "" {
			positive = append(positive, labels[0])
		}
		if value < negativeReasonThreshold && labels[1] != "" {
			negative = append(negative, labels[1])
		}
	}

	out := append(positive, negative...)
	if len(out) > maxReasons {
		out = out[:maxReasons]
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// Engine is the full per-instant scoring pipeline: chart build,
// aggregation, score ID.
type Engine struct {
	charts *chart.Builder
	agg    *Aggregator
	log    zerolog.Logger
}

// NewEngine wires a chart builder and an aggregator into one pipeline.
func NewEngine(charts *chart.Builder, tables *activity.Tables, log zerolog.Logger) *Engine {
	return &Engine{
		charts: charts,
		agg:    NewAggregator(tables, log),
		log:    log.With().Str("component", "engine").Logger(),
	}
}

// Charts exposes the underlying builder for natal resolution.
func (e *Engine) Charts() *chart.Builder { return e.charts }

// ScoreInstant scores one instant and place for an activity.
func (e *Engine) ScoreInstant(instant time.Time, lat, lon float64, natal *chart.Natal, activityKey, tz string) (*Result, error) {
	event, err := e.charts.Build(instant, lat, lon)
	if err != nil {
		return nil, err
	}

	breakdown, reasons := e.agg.Aggregate(event, natal, activityKey)
	level := chart.L0
	if natal != nil {
		level = natal.Level
	}

	return &Result{
		Instant:   instant,
		Score:     breakdown.FinalScore,
		Breakdown: breakdown,
		Reasons:   reasons,
		ScoreID:   ScoreID(instant, lat, lon, tz, activity.Normalize(activityKey)),
		Level:     level,
		Chart:     event,
	}, nil
}

// SubScoreNames returns the calculator names in declaration order.
func (e *Engine) SubScoreNames() []string {
	names := make([]string, len(e.agg.calcs))
	for i, c := range e.agg.calcs {
		names[i] = c.Name()
	}
	return names
}

// SortedSubScores lists a breakdown's entries ordered by value,
// highest first, for rendering.
func SortedSubScores(b Breakdown) []string {
	names := make([]string, 0, len(b.SubScores))
	for name := range b.SubScores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if b.SubScores[names[i]] != b.SubScores[names[j]] {
			return b.SubScores[names[i]] > b.SubScores[names[j]]
		}
		return names[i] < names[j]
	})
	return names
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
