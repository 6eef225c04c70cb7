package calculators

import (
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
)

// TaraBala scores the cyclic relation between the natal Moon's lunar
// mansion and the event's. Requires at least L1; at L0 there is no
// natal Moon, so the factor is exactly neutral.
type TaraBala struct{}

var (
	taraFavorable   = map[int]bool{2: true, 4: true, 6: true, 8: true, 9: true}
	taraUnfavorable = map[int]bool{3: true, 5: true, 7: true}
)

func (TaraBala) Name() string { return "taraBala" }

func (TaraBala) Calculate(event *chart.Chart, natal *chart.Natal, _ string) float64 {
	if natal == nil || !natal.Level.AtLeast(chart.L1) {
		return Neutral
	}

	natalMansion := natal.Chart.Position(ephemeris.Moon).Nakshatra
	eventMansion := event.Panchanga.Nakshatra

	distance := ((eventMansion-natalMansion)%27+27)%27 + 1
	tara := (distance-1)%9 + 1

	switch {
	case taraFavorable[tara]:
		return 0.7
	case taraUnfavorable[tara]:
		return -0.5
	}
	return 0.1
}

// ChandraBala scores the cyclic sign relation between the natal Moon
// and the event Moon. Relations 6, 8 and 12 are unfavorable. Neutral
// at L0.
type ChandraBala struct{}

var chandraUnfavorable = map[int]bool{6: true, 8: true, 12: true}

func (ChandraBala) Name() string { return "chandraBala" }

func (ChandraBala) Calculate(event *chart.Chart, natal *chart.Natal, _ string) float64 {
	if natal == nil || !natal.Level.AtLeast(chart.L1) {
		return Neutral
	}

	natalSign := natal.Chart.Position(ephemeris.Moon).Sign
	eventSign := event.Position(ephemeris.Moon).Sign

	relation := ((eventSign-natalSign)%12+12)%12 + 1
	if chandraUnfavorable[relation] {
		return -0.6
	}
	return 0.8
}
