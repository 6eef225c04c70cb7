package chart

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Level is the natal fidelity tier, fixed at construction.
type Level string

const (
	// L0 - birth date only. Only calendar factors are personal-data-free
	// enough to use; natal planetary positions are not meaningful.
	L0 Level = "L0"
	// L1 - birth date and time. Natal Sun/Moon positions are usable.
	L1 Level = "L1"
	// L2 - date, time and location. Full chart including angles.
	L2 Level = "L2"
)

// AtLeast reports whether the level provides at least the given tier.
func (l Level) AtLeast(other Level) bool {
	rank := map[Level]int{L0: 0, L1: 1, L2: 2}
	return rank[l] >= rank[other]
}

// BirthInput carries the caller-supplied birth information.
type BirthInput struct {
	Date string   // "2006-01-02" or full RFC3339, mandatory
	Time string   // "15:04" or "15:04:05", optional
	Lat  *float64 // optional
	Lon  *float64 // optional
}

// ErrMissingBirthDate rejects scoring without a birth date.
var ErrMissingBirthDate = errors.New("birth date is required")

// Natal is a chart for the birth instant tagged with its fidelity level.
type Natal struct {
	Level        Level
	Chart        *Chart
	BirthInstant time.Time
}

// ResolveNatal selects the fidelity level from the available birth
// information and builds the natal chart.
//
// Level selection is total: no date is a hard error, date without time
// is L0, date+time without location is L1, all three is L2. When the
// birth time is unknown the chart is built at local noon in loc as an
// explicit placeholder; loc defaults to UTC.
func (b *Builder) ResolveNatal(in BirthInput, loc *time.Location) (*Natal, error) {
	if strings.TrimSpace(in.Date) == "" {
		return nil, ErrMissingBirthDate
	}
	if loc == nil {
		loc = time.UTC
	}

	instant, timeKnown, err := parseBirthInstant(in, loc)
	if err != nil {
		return nil, err
	}

	hasLocation := in.Lat != nil && in.Lon != nil
	level := L0
	switch {
	case timeKnown && hasLocation:
		level = L2
	case timeKnown:
		level = L1
	}

	lat, lon := 0.0, 0.0
	if hasLocation {
		lat, lon = *in.Lat, *in.Lon
	}

	natalChart, err := b.Build(instant, lat, lon)
	if err != nil {
		return nil, err
	}
	if level != L2 {
		// Angles require a trusted birth location
		natalChart.Angles = nil
	}

	return &Natal{
		Level:        level,
		Chart:        natalChart,
		BirthInstant: instant,
	}, nil
}

func parseBirthInstant(in BirthInput, loc *time.Location) (time.Time, bool, error) {
	date := strings.TrimSpace(in.Date)

	if strings.Contains(date, "T") {
		t, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid birth date %q: %w", date, err)
		}
		return t, true, nil
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid birth date %q: %w", date, err)
	}

	bt := strings.TrimSpace(in.Time)
	if bt == "" {
		// Local-noon placeholder for unknown birth times
		return day.Add(12 * time.Hour), false, nil
	}

	layout := "15:04"
	if strings.Count(bt, ":") == 2 {
		layout = "15:04:05"
	}
	clock, err := time.Parse(layout, bt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid birth time %q: %w", bt, err)
	}

	return day.Add(time.Duration(clock.Hour())*time.Hour +
		time.Duration(clock.Minute())*time.Minute +
		time.Duration(clock.Second())*time.Second), true, nil
}
